package ir

import "fmt"

// OrderClause is one ORDER BY term; Desc selects descending order.
type OrderClause struct {
	Expr Node
	Desc bool
}

// TransformList is the workhorse node: filter/sort/paginate/project a list.
// The inner node may reference ItemVariable and any variable visible at the
// TransformList's own scope (§3.1 invariant 5).
type TransformList struct {
	List         Node
	ItemVariable *Variable
	Filter       Node // optional
	OrderBy      []OrderClause
	Skip         *int64 // optional, >= 0 when set
	MaxCount     *int64 // optional, >= 0 when set; nil means unbounded
	Inner        Node
}

func (*TransformList) isNode() {}

// NewTransformList validates skip/maxCount non-negativity (§3.1 invariant 4)
// and that List/ItemVariable/Inner are present.
func NewTransformList(
	list Node,
	itemVar *Variable,
	filter Node,
	orderBy []OrderClause,
	skip, maxCount *int64,
	inner Node,
) (*TransformList, error) {
	if list == nil {
		return nil, fmt.Errorf("ir: TransformList requires a list node")
	}
	if itemVar == nil {
		return nil, fmt.Errorf("ir: TransformList requires an item variable")
	}
	if inner == nil {
		return nil, fmt.Errorf("ir: TransformList requires an inner node")
	}
	if skip != nil && *skip < 0 {
		return nil, fmt.Errorf("ir: TransformList skip must be >= 0, got %d", *skip)
	}
	if maxCount != nil && *maxCount < 0 {
		return nil, fmt.Errorf("ir: TransformList maxCount must be >= 0, got %d", *maxCount)
	}
	for i, oc := range orderBy {
		if oc.Expr == nil {
			return nil, fmt.Errorf("ir: TransformList orderBy[%d] has a nil expr", i)
		}
	}
	return &TransformList{
		List: list, ItemVariable: itemVar, Filter: filter,
		OrderBy: orderBy, Skip: skip, MaxCount: maxCount, Inner: inner,
	}, nil
}

// Count lowers to LENGTH(x) when x is index-optimizable (a Field or
// Entities), otherwise to a COLLECT WITH COUNT subquery (§4.D, §8 property 7).
type Count struct {
	List Node
}

func (*Count) isNode() {}

func NewCount(list Node) (*Count, error) {
	if list == nil {
		return nil, fmt.Errorf("ir: Count requires a list node")
	}
	return &Count{List: list}, nil
}
