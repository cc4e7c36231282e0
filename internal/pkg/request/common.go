package request

// ByIDRequest binds the :id path parameter for resources addressed by UUID.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
