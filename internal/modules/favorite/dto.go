package favorite

// AddFavoriteRequest: тело POST /favorites. userEmail по умолчанию берётся
// из X-User-Email.
type AddFavoriteRequest struct {
	ArtworkID string `json:"artworkId"`
	UserEmail string `json:"userEmail" validate:"omitempty,email"`
}

// CheckFavoriteResponse: ответ на проверку "в избранном ли"
type CheckFavoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

type CountResponse struct {
	ArtworkID string `json:"artworkId"`
	Count     int64  `json:"count"`
}

type DeletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
