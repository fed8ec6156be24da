package model

// SessionDto is a form session as the JSON API returns it
type SessionDto struct {
	ID   string       `json:"id" example:"5f0c6f7e-2a8f-4c57-9b61-1f0f6a5d7c3e"`
	View ScreenerView `json:"view"`
}

// UpdateFieldRequest replaces one filter; a null value makes the field absent
type UpdateFieldRequest struct {
	Field Field `json:"field" enum:"marketCapLowerThan,priceLowerThan,averageVolumeMoreThan,exchange,isActivelyTrading,isEtf,isFund,limit" doc:"Filter to replace"`
	Value any   `json:"value" required:"false" doc:"Number, string or boolean matching the field; null clears it"`
}

// --- Huma Structs ---

type SessionOutput struct {
	Body SessionDto
}

type SessionInput struct {
	ID string `path:"id" doc:"Form session ID"`
}

type UpdateFieldInput struct {
	ID   string `path:"id" doc:"Form session ID"`
	Body UpdateFieldRequest
}

type SubmitInput struct {
	ID   string `path:"id" doc:"Form session ID"`
	Wait bool   `query:"wait" doc:"Block until the screening request settles"`
}

type ApplyPresetInput struct {
	ID   string `path:"id" doc:"Form session ID"`
	Name string `path:"name" doc:"Preset name" example:"PENNY_NASDAQ"`
}
