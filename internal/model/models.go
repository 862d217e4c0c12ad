package model

// Book 书籍模型（持久化，按 title 全局唯一）
type Book struct {
	ID            int    `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	Author        string `json:"author" db:"author"`
	CoverImageURL string `json:"cover_image_url" db:"cover_image_url"`
	PreviewURL    string `json:"preview_url" db:"preview_url"`
	// Description AI 生成的推荐理由，仅单本推荐路径填充，不入库
	Description string `json:"description,omitempty" db:"-"`
}

// BookSearch 书籍搜索缓存记录（按规范化查询串唯一）
type BookSearch struct {
	ID          int    `json:"id" db:"id"`
	Query       string `json:"query" db:"query"`
	SearchCount int    `json:"search_count" db:"search_count"`
	Books       []Book `json:"books" db:"-"`
}

// Movie 电影推荐结果（不持久化，每次调用重新解析）
type Movie struct {
	// ID 批量推荐时的 1 起始展示序号，单条推荐为 0
	ID          int      `json:"id,omitempty"`
	TMDBID      int      `json:"tmdb_id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	Rating      float64  `json:"rating"`
	PosterURL   string   `json:"poster_url,omitempty"`
	GenreNames  []string `json:"genre_names"`
	TrailerURL  string   `json:"trailer_url"`
}
