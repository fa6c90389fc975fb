package main

import (
	"net/http"

	"hbs/src/services"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
)

func bookingRoutes(g *gin.RouterGroup, svc services.BookingService) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			booking, err := svc.Create(ctx.Request.Context(), userId, &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			bookings, err := svc.UserBookings(ctx.Request.Context(), userId)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:ref", func(ctx *gin.Context) {
			var params struct {
				Ref string `uri:"ref" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, err := svc.FindByRef(ctx.Request.Context(), ctx.GetUint("id"), params.Ref)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}
