package customer

type CreateCustomerReq struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,numeric,min=10,max=11"`
	CPF      string `json:"cpf" validate:"required,numeric,len=11"`
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
}

// UpdateCustomerReq allows partial updates; absent fields keep their
// stored value.
type UpdateCustomerReq struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" validate:"omitempty,numeric,min=10,max=11"`
	CPF      *string `json:"cpf" validate:"omitempty,numeric,len=11"`
	Birthday *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
}
