package transport

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/abu-huda81/shop_backend/internal/apperr"
)

var validate = validator.New()

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UpdateRoleRequest struct {
	NewRole string `json:"new_role" validate:"required,min=3,max=20"`
}

func (r *UpdateRoleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

// Product create/update come in as multipart form fields next to the image
// files, so the handler fills this struct by hand before validating.
type ProductRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	NewPrice    float64 `json:"new_price"   validate:"gte=0"`
}

func (r *ProductRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if r.NewPrice > r.Price {
		return fmt.Errorf("%w: new_price cannot exceed price", apperr.ErrValidation)
	}
	return nil
}

type CreateOrderItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  uint `json:"quantity"   validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
}

func (r *CreateOrderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}
