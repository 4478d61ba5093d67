package request

type CreateBookingRequest struct {
	ID           string `json:"id,omitempty" validate:"omitempty,uuid4"`
	ClientName   string `json:"client_name" validate:"required,min=1,max=200"`
	ClientPhone  string `json:"client_phone" validate:"required,min=5,max=32"`
	Service      string `json:"service" validate:"required,min=1,max=200"`
	ProviderID   string `json:"provider_id" validate:"required"`
	ProviderName string `json:"provider_name" validate:"required,min=1,max=200"`
	StartsAt     string `json:"starts_at" validate:"required"`
	EndsAt       string `json:"ends_at" validate:"required"`
	Timezone     string `json:"timezone" validate:"required"`
	Notes        string `json:"notes" validate:"max=2000"`
	Status       string `json:"status" validate:"omitempty,oneof=confirmed cancelled no_show"`
}

type UpdateBookingRequest struct {
	ClientName   string `json:"client_name" validate:"required,min=1,max=200"`
	ClientPhone  string `json:"client_phone" validate:"required,min=5,max=32"`
	Service      string `json:"service" validate:"required,min=1,max=200"`
	ProviderID   string `json:"provider_id" validate:"required"`
	ProviderName string `json:"provider_name" validate:"required,min=1,max=200"`
	StartsAt     string `json:"starts_at" validate:"required"`
	EndsAt       string `json:"ends_at" validate:"required"`
	Timezone     string `json:"timezone" validate:"required"`
	Notes        string `json:"notes" validate:"max=2000"`
	Status       string `json:"status" validate:"omitempty,oneof=confirmed cancelled no_show"`
}
