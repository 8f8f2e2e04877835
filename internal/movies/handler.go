package movies

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"moviehub/internal/cache"
	"moviehub/internal/movieapi"
	"moviehub/pkg/models"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50

	recommendationCount = 3
)

const (
	sourceAll        = "all"
	sourceLocal      = "local"
	sourceThirdParty = "third_party"
)

type Handler struct {
	Repo  *Repo
	API   *movieapi.Client
	Cache *cache.MovieCache
}

func NewHandler(repo *Repo, api *movieapi.Client, c *cache.MovieCache) *Handler {
	return &Handler{Repo: repo, API: api, Cache: c}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/random/:count", h.random)
	rg.GET("/recommendations", h.recommendations)
	rg.GET("/:id", h.getByID)
}

// list merges the local collection with the third-party API under one
// paginated, searchable response. Local records always sort before
// third-party records; the search filter on the third-party side is
// best-effort, confined to the single upstream page that was fetched.
func (h *Handler) list(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}

	pageSize := parseInt(c.Query("pageSize"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	source := c.Query("source")
	if source == "" {
		source = sourceAll
	}
	if source != sourceAll && source != sourceLocal && source != sourceThirdParty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source must be one of: all, local, third_party"})
		return
	}

	search := c.Query("search")

	filteredLocal := filterByTitle(h.Repo.ReadAll(), search)
	start := (page - 1) * pageSize

	items := make([]models.Movie, 0, pageSize)

	switch source {
	case sourceLocal:
		items = append(items, pageSlice(filteredLocal, start, pageSize)...)

	case sourceThirdParty:
		fetched, err := h.API.FetchPage(c.Request.Context(), page)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movies"})
			return
		}
		remote := filterByTitle(fetched, search)
		if len(remote) > pageSize {
			remote = remote[:pageSize]
		}
		items = append(items, remote...)

	case sourceAll:
		items = append(items, pageSlice(filteredLocal, start, pageSize)...)
		if len(items) < pageSize {
			fetched, err := h.API.FetchPage(c.Request.Context(), page)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movies"})
				return
			}
			remote := filterByTitle(fetched, search)
			fill := pageSize - len(items)
			if len(remote) > fill {
				remote = remote[:fill]
			}
			items = append(items, remote...)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"pageSize": pageSize,
		"items":    items,
		"meta": gin.H{
			"source":     source,
			"search":     search,
			"localCount": len(filteredLocal),
		},
	})
}

// getByID resolves a movie from the local store first, then from the
// third-party result cache. A third-party id is only resolvable if it was
// already seen via a prior list or random fetch in this process.
func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")

	if m, ok := h.Repo.FindByID(id); ok {
		c.JSON(http.StatusOK, m)
		return
	}
	if m, ok := h.Cache.Get(id); ok {
		c.JSON(http.StatusOK, m)
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
}

type createReq struct {
	Title string   `json:"title"`
	Year  *float64 `json:"year"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must be a non-empty string and year must be a number"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if req.Year == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}

	m, err := h.Repo.Create(title, int(*req.Year))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create movie"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *Handler) random(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
		return
	}

	items, err := h.API.FetchRandom(c.Request.Context(), count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch random movies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) recommendations(c *gin.Context) {
	items, err := h.API.FetchRandom(c.Request.Context(), recommendationCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// filterByTitle keeps movies whose title contains the search string,
// case-insensitively. An empty search keeps everything.
func filterByTitle(in []models.Movie, search string) []models.Movie {
	if search == "" {
		return in
	}
	needle := strings.ToLower(search)
	out := make([]models.Movie, 0, len(in))
	for _, m := range in {
		if strings.Contains(strings.ToLower(m.Title), needle) {
			out = append(out, m)
		}
	}
	return out
}

func pageSlice(in []models.Movie, start, size int) []models.Movie {
	if start >= len(in) {
		return nil
	}
	end := start + size
	if end > len(in) {
		end = len(in)
	}
	return in[start:end]
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
