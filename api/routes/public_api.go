package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trailangels/api/handlers"
	"trailangels/api/middleware"
	"trailangels/services"
)

// PublicApi wires the full REST surface. The auth middleware is injectable
// so tests can run against the test variant.
func PublicApi(router *gin.Engine, auth gin.HandlerFunc) *gin.RouterGroup {
	router.Use(middleware.PrometheusMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api/v1/")
	{
		public.POST("auth/register", handlers.Register)
		public.POST("auth/login", handlers.Login)
		public.POST("auth/logout", handlers.Logout)

		// Host directory
		public.GET("angels", handlers.ListAngelsHandler)
		public.GET("angels/markers", handlers.GetMarkersHandler)
		public.GET("angels/:angel_id", handlers.GetAngelHandler)

		// Trail radio feed is public to read
		public.GET("radio", handlers.GetRadioFeedHandler)
	}

	private := router.Group("/api/v1/")
	private.Use(auth)
	{
		private.GET("profile", handlers.GetProfileHandler)
		private.PUT("profile", handlers.UpdateProfileHandler)
		private.PUT("profile/services", handlers.SetServicesHandler)
		private.PUT("profile/address", handlers.SetAddressHandler)
		private.PUT("profile/contact", handlers.SetContactHandler)

		// Inbox
		private.GET("inbox/conversations", handlers.ListConversationsHandler)
		private.GET("inbox/unread", handlers.UnreadBadgeHandler)
		private.GET("inbox/dialog/:angel_id", handlers.GetConversationHandler)
		private.POST("inbox/dialog/:angel_id/send", handlers.SendMessageHandler)
		private.POST("inbox/back", handlers.BackToListHandler)
		private.POST("inbox/close", handlers.CloseInboxHandler)

		// Trail radio submissions go through the moderation gate
		private.POST("radio/post", handlers.SubmitRadioPostHandler)

		private.GET("ws", handlers.WSHandler)
	}

	return public
}

// DefaultAuth builds the production token middleware.
func DefaultAuth() gin.HandlerFunc {
	return middleware.TokenAuthMiddleware(services.NewAccountService())
}
