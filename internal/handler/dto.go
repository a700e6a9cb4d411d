package handler

import "github.com/msomdec/blogging/internal/domain"

// BlogDTO is the JSON representation of a single blog. Posts is always
// present, empty when the blog has none.
type BlogDTO struct {
	ID    int64     `json:"blogId"`
	URL   string    `json:"url"`
	Posts []PostDTO `json:"posts"`
}

func toBlogDTO(b *domain.Blog) BlogDTO {
	return BlogDTO{ID: b.ID, URL: b.URL, Posts: toPostDTOs(b.Posts)}
}

// BlogSummaryDTO is a blog as it appears in listings, without posts.
type BlogSummaryDTO struct {
	ID  int64  `json:"blogId"`
	URL string `json:"url"`
}

func toBlogSummaryDTOs(blogs []domain.Blog) []BlogSummaryDTO {
	dtos := make([]BlogSummaryDTO, len(blogs))
	for i, b := range blogs {
		dtos[i] = BlogSummaryDTO{ID: b.ID, URL: b.URL}
	}
	return dtos
}

// PostDTO is the JSON representation of a post.
type PostDTO struct {
	ID      int64  `json:"postId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	BlogID  int64  `json:"blogId"`
}

func toPostDTO(p *domain.Post) PostDTO {
	return PostDTO{ID: p.ID, Title: p.Title, Content: p.Content, BlogID: p.BlogID}
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}

type blogRequest struct {
	URL string `json:"url"`
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
