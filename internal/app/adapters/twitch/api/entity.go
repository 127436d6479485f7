package api

type UsersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Login string `json:"login"`
	} `json:"data"`
}

type ChannelsResponse struct {
	Data []struct {
		BroadcasterID string `json:"broadcaster_id"`
		Title         string `json:"title"`
		GameID        string `json:"game_id"`
		GameName      string `json:"game_name"`
	} `json:"data"`
}

type GamesResponse struct {
	Data []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		BoxArtURL string `json:"box_art_url"`
	} `json:"data"`
}

type BadgesResponse struct {
	Data []struct {
		SetID    string `json:"set_id"`
		Versions []struct {
			ID         string `json:"id"`
			ImageURL1x string `json:"image_url_1x"`
		} `json:"versions"`
	} `json:"data"`
}

type EmotesResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Images struct {
			URL1x string `json:"url_1x"`
		} `json:"images"`
		Format []string `json:"format"`
	} `json:"data"`
}

type SubscriptionsResponse struct {
	Data []struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Status string `json:"status"`
	} `json:"data"`
}
