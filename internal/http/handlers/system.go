package handlers

import (
	"net/http"
	"sort"
	"sync"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

var coreTables = []string{"users", "products", "carts", "cart_products", "sales", "sale_items"}

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "backoffice is running"})
}

// DBCheck pings the database and reports which tables are missing.
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database unavailable: "+err.Error(), nil)
		return
	}
	missing := []string{}
	for _, table := range coreTables {
		if !intdb.HasTable(c.Request.Context(), intconfig.DB, table) {
			missing = append(missing, table)
		}
	}
	status := "ok"
	if len(missing) > 0 {
		status = "migrations_pending"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "missing_tables": missing})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "router_not_ready", "router is not ready", nil)
		return
	}

	routes := r.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
