package reorder_catalog

// ReorderRequest HTTP request model
// ids - полный список элементов в новом порядке
type ReorderRequest struct {
	ServiceID *int64  `json:"serviceId,omitempty"` // только для formulas
	IDs       []int64 `json:"ids"`
}
