package server

func (srv *Server) setupRoutes() {
	srv.GET("/healthz", srv.health)

	ui := srv.Group("/", WithSession(srv.sessions))
	ui.GET("/", srv.index)
	ui.POST("/", srv.submit)
	ui.GET("/uploaded", srv.uploaded)
	ui.GET("/generated", srv.generated)
	ui.GET("/download", srv.download)
}
