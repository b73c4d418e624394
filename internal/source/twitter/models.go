package twitter

type searchResponse struct {
	Data     []tweet `json:"data"`
	Includes struct {
		Users []user `json:"users"`
	} `json:"includes"`
}

type tweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	Lang          string `json:"lang"`
	PublicMetrics struct {
		RetweetCount int64 `json:"retweet_count"`
		LikeCount    int64 `json:"like_count"`
		ReplyCount   int64 `json:"reply_count"`
		QuoteCount   int64 `json:"quote_count"`
	} `json:"public_metrics"`
}

type user struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
