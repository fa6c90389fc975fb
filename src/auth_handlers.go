package main

import (
	"net/http"

	"hbs/src/services"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
)

func authRoutes(g *gin.RouterGroup, svc services.AuthService) *gin.RouterGroup {
	g.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name, email and password required"})
				return
			}
			user, err := svc.Register(ctx.Request.Context(), body.Name, body.Email, body.Password)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"success": "User registered", "user": user})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email and password required for login"})
				return
			}
			token, err := svc.Login(ctx.Request.Context(), body.Email, body.Password)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": "Login successful", "token": token})
		})
	return g
}
