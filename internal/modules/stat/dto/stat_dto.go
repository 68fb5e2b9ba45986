package dto

type HomeStats struct {
	NumRedactors  int64 `json:"num_redactors"`
	NumNewspapers int64 `json:"num_newspapers"`
	NumTopics     int64 `json:"num_topics"`
}
