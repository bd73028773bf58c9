package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"
)

const (
	userIDKey = "userID"
	rolesKey  = "roles"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())
	r.Use(s.injectFaults())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/Auth/login", s.login)
	r.POST("/Auth/register", s.register)

	protected := r.Group("/")
	protected.Use(s.requireAuth())

	for _, name := range Collections {
		h := &collectionHandler{server: s, name: name}
		protected.GET("/"+name, h.list)
		protected.GET("/"+name+"/:key", h.get)
		protected.GET("/"+name+"/:key/:value", h.scoped)

		writes := protected.Group("/" + name)
		if adminWrites[name] {
			writes.Use(requireRole(adminRole))
		}
		writes.POST("", h.create)
		writes.PUT("/:key", h.update)
		writes.DELETE("/:key", h.remove)
	}

	protected.POST("/inventory/:key/items/:equipment/move", s.moveItem)
	protected.POST("/campaign/:key/characters/:character", s.addCampaignCharacter)
	protected.DELETE("/campaign/:key/characters/:character", s.removeCampaignCharacter)

	admin := protected.Group("/")
	admin.Use(requireRole(adminRole))
	admin.GET("/cache/info", s.cacheInfo)
	admin.DELETE("/cache", s.clearCache)
	admin.GET("/Backup/:collection", s.backup)
	admin.POST("/Backup/:collection/restore", s.restore)

	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		glog.V(2).Infof("[campmock] %s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

func (s *Server) injectFaults() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		idx := slices.IndexFunc(s.faults, func(f fault) bool {
			return f.method == c.Request.Method && f.path == c.Request.URL.Path
		})
		var status int
		if idx >= 0 {
			status = s.faults[idx].status
			s.faults = slices.Delete(s.faults, idx, idx+1)
		}
		s.mu.Unlock()

		if idx >= 0 {
			c.AbortWithStatusJSON(status, gin.H{"message": "injected failure"})
			return
		}
		c.Next()
	}
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authentication token"})
			return
		}

		claims, err := s.verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authentication token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(rolesKey, claims.Roles)
		c.Next()
	}
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(c, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[strings.ToLower(body.Username)]
	s.mu.Unlock()
	if !ok || acct.Password != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	s.respondToken(c, acct)
}

func (s *Server) register(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Username) == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[strings.ToLower(body.Username)]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "Username is already taken"})
		return
	}
	acct := s.addAccountLocked(body.Username, body.Email, body.Password, []string{userRole})
	s.mu.Unlock()

	s.respondToken(c, acct)
}

func (s *Server) respondToken(c *gin.Context, acct *account) {
	token, err := s.sign(acct)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token creation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type collectionHandler struct {
	server *Server
	name   string
}

func (h *collectionHandler) list(c *gin.Context) {
	s := h.server
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rememberCacheKeyLocked(h.name)
	c.JSON(http.StatusOK, s.collections[h.name].list())
}

func (h *collectionHandler) get(c *gin.Context) {
	s := h.server
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.collections[h.name].items[c.Param("key")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": h.name + " not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// scoped answers GET /{collection}/{field}/{id} with the items whose {field}Id matches.
func (h *collectionHandler) scoped(c *gin.Context) {
	s := h.server
	field := c.Param("key") + "Id"
	value := c.Param("value")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rememberCacheKeyLocked(h.name + "/" + c.Param("key"))
	out := []map[string]any{}
	for _, item := range s.collections[h.name].list() {
		if v, _ := item[field].(string); v == value {
			out = append(out, item)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *collectionHandler) create(c *gin.Context) {
	obj, ok := bindObject(c)
	if !ok {
		return
	}

	s := h.server
	s.mu.Lock()
	defer s.mu.Unlock()

	id := objectID(obj)
	if _, exists := s.collections[h.name].items[id]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": h.name + " already exists"})
		return
	}
	if _, set := obj["ownerId"]; h.name == "campaign" && !set {
		obj["ownerId"] = c.GetString(userIDKey)
	}
	s.collections[h.name].put(id, obj)
	c.JSON(http.StatusCreated, obj)
}

func (h *collectionHandler) update(c *gin.Context) {
	obj, ok := bindObject(c)
	if !ok {
		return
	}

	s := h.server
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("key")
	coll := s.collections[h.name]
	if _, exists := coll.items[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": h.name + " not found"})
		return
	}
	coll.put(id, obj)
	c.JSON(http.StatusOK, obj)
}

func (h *collectionHandler) remove(c *gin.Context) {
	s := h.server
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.collections[h.name].remove(c.Param("key")) {
		c.JSON(http.StatusNotFound, gin.H{"message": h.name + " not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func bindObject(c *gin.Context) (map[string]any, bool) {
	obj := map[string]any{}
	if err := c.ShouldBindJSON(&obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errNoObject.Error()})
		return nil, false
	}
	return obj, true
}

func (s *Server) rememberCacheKeyLocked(key string) {
	if !slices.Contains(s.cacheKeys, key) {
		s.cacheKeys = append(s.cacheKeys, key)
	}
}

func (s *Server) cacheInfo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := slices.Clone(s.cacheKeys)
	slices.Sort(keys)
	c.JSON(http.StatusOK, gin.H{"count": len(keys), "keys": keys})
}

func (s *Server) clearCache(c *gin.Context) {
	s.mu.Lock()
	s.cacheKeys = nil
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) backup(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[c.Param("collection")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown collection"})
		return
	}
	c.JSON(http.StatusOK, coll.list())
}

func (s *Server) restore(c *gin.Context) {
	name := c.Param("collection")
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is unreadable"})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is unreadable"})
		return
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "backup must be a JSON array"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown collection"})
		return
	}
	coll := newCollection()
	for _, item := range items {
		coll.put(objectID(item), item)
	}
	s.collections[name] = coll
	c.JSON(http.StatusOK, gin.H{"restored": len(items)})
}
