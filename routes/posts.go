package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portal/models"
)

/* --------------------- Posts --------------------- */

// GET /posts
func (d *deps) getPosts(c *gin.Context) {
	posts, err := d.posts.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch posts. Try again later."})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// POST /posts
func (d *deps) createPost(c *gin.Context) {
	var post models.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if post.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required."})
		return
	}

	post.UserID = c.GetInt64("userId")
	if post.ID == "" {
		post.ID = uuid.NewString()
	}

	if err := d.posts.Create(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create post. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgePostsList(c)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "post created!", "post": post})
}

// PUT /posts/:id
func (d *deps) updatePost(c *gin.Context) {
	id := c.Param("id")
	userId := c.GetInt64("userId")

	old, err := d.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch the post. Try again later."})
		return
	}
	if old.UserID != userId {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to update post."})
		return
	}

	var incoming models.Post
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	incoming.ID = id
	incoming.UserID = old.UserID

	if err := d.posts.Update(&incoming); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update post. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgePostsList(c)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully!"})
}

// DELETE /posts/:id
func (d *deps) deletePost(c *gin.Context) {
	id := c.Param("id")
	userId := c.GetInt64("userId")

	post, err := d.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch the post. Try again later."})
		return
	}
	if post.UserID != userId {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to delete post."})
		return
	}

	if err := d.posts.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete the post."})
		return
	}

	if d.inv != nil {
		d.inv.PurgePostsList(c)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully!"})
}
