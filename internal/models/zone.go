package models

// RestrictedZone - круговая запрещенная зона субъекта с двумя порогами
type RestrictedZone struct {
	ID              string  `json:"id"`
	SubjectID       string  `json:"subject_id"`
	SubjectDisplay  string  `json:"subject_display"`
	DisplayName     string  `json:"display_name"`
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	DangerRadiusM   float64 `json:"danger_radius_m"`
	WarningRadiusM  float64 `json:"warning_radius_m"`
}
