package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/", s.home)
	s.router.GET("/apply", s.applyForm)
	s.router.POST("/apply", s.apply)
	s.router.GET("/payment-instructions", s.paymentInstructions)
	s.router.GET("/draws", s.draws)
	s.router.GET("/receipt/:code", s.receipt)
	s.router.GET("/healthz", s.healthz)

	s.router.GET("/admin-login", s.adminLoginForm)
	s.router.POST("/admin-login", s.adminLogin)
	s.router.GET("/admin-logout", s.adminLogout)

	admin := s.router.Group("/", s.requireAdmin())
	admin.GET("/admin", s.adminPanel)
	admin.GET("/verify-payment/:id", s.verifyPayment)
	admin.GET("/mark-paid/:id", s.markPaid)

	s.router.POST("/validate-transaction", s.requireAdminAPI(), s.validateTransaction)

	s.router.NoRoute(s.notFound)
}
