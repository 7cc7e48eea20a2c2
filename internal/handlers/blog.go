package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"miniblog/internal/models"
	"miniblog/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogHandler struct {
	db *gorm.DB
}

func NewBlogHandler(database *gorm.DB) *BlogHandler {
	return &BlogHandler{db: database}
}

// fillVoteCounts 批量填充帖子的点赞数量
func fillVoteCounts(database *gorm.DB, posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	database.Model(&models.Vote{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].VoteCount = countMap[posts[i].ID]
	}
}

// getPost fetches a post with its author and is the single authorization
// checkpoint for update/delete/view. Missing id renders 404, checkAuthor
// with a non-author renders 403; callers must bail out when ok is false.
func (h *BlogHandler) getPost(c *gin.Context, checkAuthor bool) (post models.Post, ok bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post id "+c.Param("id")+" doesn't exist.")
		return post, false
	}

	if err := h.db.Preload("User").First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, fmt.Sprintf("Post id %d doesn't exist.", id))
		return post, false
	}

	if checkAuthor {
		user := currentUser(c)
		if user == nil || post.UserID != user.ID {
			RenderError(c, http.StatusForbidden, "You are not the author of this post.")
			return post, false
		}
	}

	return post, true
}

// getVote reports whether the user currently has a vote on the post.
func (h *BlogHandler) getVote(postID, userID uint) bool {
	var count int64
	h.db.Model(&models.Vote{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count)
	return count > 0
}

// toggleVote moves the (post, user) vote to the state the like flag asks
// for. Both directions are no-ops when already there: the insert rides on
// the unique index with ON CONFLICT DO NOTHING, the delete matches zero rows.
func toggleVote(tx *gorm.DB, postID, userID uint, like bool) error {
	if like {
		vote := models.Vote{PostID: postID, UserID: userID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote).Error
	}
	return tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Vote{}).Error
}

func (h *BlogHandler) Index(c *gin.Context) {
	var posts []models.Post
	h.db.Preload("User").
		Order("created_at DESC").
		Find(&posts)

	fillVoteCounts(h.db, posts)

	Render(c, http.StatusOK, "blog/index.html", gin.H{"Posts": posts})
}

func (h *BlogHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "blog/create.html", nil)
}

func (h *BlogHandler) Create(c *gin.Context) {
	user := currentUser(c)
	title := c.PostForm("title")
	body := c.PostForm("body")

	if title == "" {
		Render(c, http.StatusOK, "blog/create.html", gin.H{"Error": "Title is required.", "Body": body})
		return
	}

	post := models.Post{
		UserID: user.ID,
		Title:  title,
		Body:   body,
	}
	if err := h.db.Create(&post).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to save post")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *BlogHandler) ShowUpdate(c *gin.Context) {
	post, ok := h.getPost(c, true)
	if !ok {
		return
	}

	liked := h.getVote(post.ID, currentUser(c).ID)

	Render(c, http.StatusOK, "blog/update.html", gin.H{"Post": post, "Liked": liked})
}

func (h *BlogHandler) Update(c *gin.Context) {
	post, ok := h.getPost(c, true)
	if !ok {
		return
	}
	user := currentUser(c)

	title := c.PostForm("title")
	body := c.PostForm("body")
	_, like := c.GetPostForm("like")

	if title == "" {
		liked := h.getVote(post.ID, user.ID)
		Render(c, http.StatusOK, "blog/update.html", gin.H{"Error": "Title is required.", "Post": post, "Liked": liked})
		return
	}

	// Post edit and vote toggle commit together
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Updates(map[string]interface{}{
			"title": title,
			"body":  body,
		}).Error; err != nil {
			return err
		}
		return toggleVote(tx, post.ID, user.ID, like)
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to save post")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *BlogHandler) Delete(c *gin.Context) {
	post, ok := h.getPost(c, true)
	if !ok {
		return
	}

	// Votes go with the post, the FK cascade is a backstop for stores
	// that don't enforce it
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// View renders a post for anyone, logged in or not.
func (h *BlogHandler) View(c *gin.Context) {
	post, ok := h.getPost(c, false)
	if !ok {
		return
	}

	liked := false
	if user := currentUser(c); user != nil {
		liked = h.getVote(post.ID, user.ID)
	}

	Render(c, http.StatusOK, "blog/view.html", gin.H{
		"Post":     post,
		"Liked":    liked,
		"BodyHTML": utils.RenderMarkdown(post.Body),
	})
}

// VoteView toggles the current user's vote from the view page. Unlike
// Update this has no author check, any logged-in visitor may like a post.
func (h *BlogHandler) VoteView(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	post, ok := h.getPost(c, false)
	if !ok {
		return
	}

	_, like := c.GetPostForm("like")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		return toggleVote(tx, post.ID, user.ID, like)
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to save vote")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
