package wizarddto

type FieldUpdateRequest struct {
	Field string `json:"field" validate:"required,max=64"`
	Value string `json:"value" validate:"max=200"`
}

type CountRequest struct {
	Field string `json:"field" validate:"required,oneof=interior_count exterior_count"`
	Delta int    `json:"delta" validate:"ne=0,min=-100,max=100"`
}

type JumpRequest struct {
	Step int `json:"step" validate:"required,min=1"`
}
