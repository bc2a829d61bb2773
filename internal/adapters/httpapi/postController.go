package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"iyouconnect/internal/adapters/httpapi/middleware"
	postEntity "iyouconnect/internal/core/post"
	"iyouconnect/internal/core/post/presenter"
	postPort "iyouconnect/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc   PostUseCase
	live LiveUseCase
	opts Options
}

func NewPostController(pc PostUseCase, live LiveUseCase, opts Options) *PostController {
	return &PostController{pc: pc, live: live, opts: opts}
}

type pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
}

func (ctl *PostController) Feed(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	feed, err := ctl.pc.Feed(c.Request.Context(), page, ctl.opts.PageSize)
	if err != nil {
		ctl.fail(c, err)
		return
	}

	tag := strings.TrimSpace(c.Query("tag"))
	sortMode := strings.TrimSpace(c.Query("sort"))
	views := presenter.FilterByTag(presenter.PresentAll(feed.Items, ctl.opts.Now()), tag)
	if sortMode != "" {
		presenter.SortViews(views, sortMode)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": views,
		"pagination": pagination{
			CurrentPage: feed.CurrentPage,
			TotalPages:  feed.TotalPages,
			TotalCount:  feed.TotalCount,
		},
		"filter":    tag,
		"sort":      sortMode,
		"live":      ctl.live.Snapshot(),
		"pageTitle": ctl.opts.AppName + " Feed",
	})
}

func (ctl *PostController) NewPost(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pageTitle":        "Create a Post | " + ctl.opts.AppName,
		"maxContentLength": postEntity.MaxContentLength,
	})
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Username    string   `json:"username" form:"username"`
		Content     string   `json:"content" form:"content"`
		DisplayName string   `json:"displayName" form:"displayName"`
		Tags        []string `json:"tags" form:"tags"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	displayName := req.DisplayName
	if strings.TrimSpace(displayName) == "" {
		displayName = req.Username
	}
	p, err := ctl.pc.CreatePost(c.Request.Context(), postPort.CreateInput{
		Username:    req.Username,
		Content:     req.Content,
		DisplayName: displayName,
		Tags:        req.Tags,
	})
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, presenter.Present(p, ctl.opts.Now()))
}

func (ctl *PostController) ShowPost(c *gin.Context) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":      presenter.Present(p, ctl.opts.Now()),
		"pageTitle": ctl.opts.AppName + " | Post",
	})
}

func (ctl *PostController) EditPost(c *gin.Context) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	view := presenter.Present(p, ctl.opts.Now())
	c.JSON(http.StatusOK, gin.H{
		"post":             view,
		"editable":         view.Editable,
		"maxContentLength": postEntity.MaxContentLength,
		"pageTitle":        "Edit Post | " + ctl.opts.AppName,
	})
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	p, err := ctl.pc.UpdatePost(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, presenter.Present(p, ctl.opts.Now()))
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if err := ctl.pc.DeletePost(c.Request.Context(), id); err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (ctl *PostController) LikePost(c *gin.Context) {
	p, liked, err := ctl.pc.LikePost(c.Request.Context(), c.Param("id"), middleware.ClientIDFrom(c))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"likes":      p.Likes,
		"likesLabel": presenter.FormatCount(p.Likes),
		"liked":      liked,
	})
}

// fail خطای سرویس را به کد HTTP مناسب تبدیل می‌کند
func (ctl *PostController) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, postEntity.ErrInvalidPost):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and content are required."})
	case errors.Is(err, postEntity.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, postEntity.ErrPostLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Developer posts are locked"})
	default:
		ctl.opts.Logger.Error("❌ Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
