package domain

type Park struct {
	ID               string   `json:"id"`
	OfficialName     string   `json:"official_name"`
	CommonName       string   `json:"common_name"`
	Status           string   `json:"status"`
	Type             string   `json:"type"`
	Class            string   `json:"class"`
	Address          string   `json:"address"`
	AreaSquareMeters *float64 `json:"area_square_meters,omitempty"`
	Location         Location `json:"location"`
	// DistanceFromUser - километры, считается на каждый запрос
	DistanceFromUser *float64 `json:"distance_from_user_km,omitempty"`
}
