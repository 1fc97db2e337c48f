package http

import (
	"log"
	"net/http"

	echo "github.com/labstack/echo/v4"

	"github.com/enginrect/ovs-rule-reaper/internal/domain"
	"github.com/enginrect/ovs-rule-reaper/internal/ports"
	"github.com/enginrect/ovs-rule-reaper/internal/usecase"
)

type Server struct {
	e  *echo.Echo
	dp ports.DatapathPort
	br ports.OVSBridgePort
	db ports.OVSDBPort // nil unless the ovsdb used-port source is enabled
}

func NewServer(dp ports.DatapathPort, br ports.OVSBridgePort, db ports.OVSDBPort) *Server {
	e := echo.New()
	s := &Server{e: e, dp: dp, br: br, db: db}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	s.e.POST("/cleanup", s.handleCleanup)
}

func (s *Server) handleCleanup(c echo.Context) error {
	bridge := c.QueryParam("bridge")
	if bridge == "" {
		bridge = domain.Bridge
	}
	var (
		report domain.Report
		err    error
	)
	if s.db != nil {
		report, err = usecase.RemoveLeakedFlowsFromDB(s.db, s.br, bridge)
	} else {
		report, err = usecase.RemoveLeakedFlows(s.dp, s.br, bridge)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) Start(addr string) error {
	log.Printf("listening on %s", addr)
	return s.e.Start(addr)
}
