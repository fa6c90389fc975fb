package main

import (
	"fmt"
	"net/http"
	"strconv"

	"hbs/src/services"

	"github.com/gin-gonic/gin"
)

func invoiceRoutes(g *gin.RouterGroup, svc services.InvoiceService) *gin.RouterGroup {
	g.
		GET("/download_invoice", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			idParam := ctx.Query("booking_id")
			if idParam == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing booking_id in request"})
				return
			}
			atoi, err := strconv.Atoi(idParam)
			if err != nil || atoi < 1 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "booking_id must be a positive integer"})
				return
			}

			invoice, err := svc.GenerateForUser(ctx.Request.Context(), userId, uint(atoi))
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.Filename))
			ctx.Data(http.StatusOK, "application/pdf", invoice.Content)
		})
	return g
}
