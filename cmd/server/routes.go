package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"homeserve.backend/internal/interfaces/http/handlers"
	"homeserve.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	documentHandler *handlers.DocumentHandler
	adminHandler    *handlers.AdminHandler
	bookingHandler  *handlers.BookingHandler
	authMiddleware  gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
		}

		// Document routes (providers)
		documents := v1.Group("/documents")
		documents.Use(d.authMiddleware, middleware.RequireProvider())
		{
			documents.POST("/upload/:docType", d.documentHandler.Upload)
			documents.DELETE("/:docType/:fileId", d.documentHandler.Delete)
			documents.POST("/submit", d.documentHandler.Submit)
			documents.POST("/resubmit", d.documentHandler.Resubmit)
			documents.GET("/status", d.documentHandler.Status)
		}

		// Booking routes (protected)
		bookings := v1.Group("/bookings")
		bookings.Use(d.authMiddleware)
		{
			bookings.POST("", middleware.IdempotencyMiddleware(), d.bookingHandler.Create)
			bookings.PUT("/:id/confirm", d.bookingHandler.Confirm)
			bookings.PUT("/:id/reject", d.bookingHandler.Reject)
			bookings.PUT("/:id/complete", d.bookingHandler.Complete)
			bookings.PUT("/:id/cancel", d.bookingHandler.Cancel)
			bookings.GET("/provider", d.bookingHandler.ListForProvider)
			bookings.GET("/customer", d.bookingHandler.ListForCustomer)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/providers", d.adminHandler.ListProviders)
			admin.GET("/providers/pending", d.adminHandler.ListPendingProviders)
			admin.GET("/providers/:id/documents", d.adminHandler.GetProviderDocuments)
			admin.POST("/providers/verify", d.adminHandler.VerifyProvider)
			admin.PUT("/providers/:id/status", d.adminHandler.SetProviderStatus)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, Idempotency-Key")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "homeserve-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
