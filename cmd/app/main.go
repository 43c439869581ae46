package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tripdesk/cmd/fx/checkout_fx"
	"tripdesk/cmd/fx/db_fx"
	"tripdesk/cmd/fx/messaging_fx"
	"tripdesk/cmd/fx/orders_fx"
	"tripdesk/cmd/fx/providers_fx"
	"tripdesk/internal/api/controllers"
	"tripdesk/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		providers_fx.Module,
		checkout_fx.Module,
		orders_fx.Module,
		messaging_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	checkoutController *controllers.CheckoutController,
	ordersController *controllers.OrdersController,
	messagesController *controllers.MessagesController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, checkoutController, ordersController, messagesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	checkoutController *controllers.CheckoutController,
	ordersController *controllers.OrdersController,
	messagesController *controllers.MessagesController) {

	sessions := r.Group("/checkout/sessions")
	sessions.POST("", checkoutController.StartSession)
	sessions.GET("/:id", checkoutController.GetSession)
	sessions.PUT("/:id/answers", checkoutController.SetAnswer)
	sessions.PUT("/:id/travelers/draft", checkoutController.StageDraft)
	sessions.GET("/:id/travelers/:slot/draft", checkoutController.OpenSlotDraft)
	sessions.POST("/:id/travelers/commit", checkoutController.CommitSlot)
	sessions.PUT("/:id/client-info", checkoutController.UpdateClientInfo)
	sessions.POST("/:id/advance", checkoutController.Advance)
	sessions.POST("/:id/edit-client-info", checkoutController.EditClientInfo)
	sessions.POST("/:id/submit", checkoutController.Submit)
	sessions.POST("/:id/confirm", checkoutController.ConfirmPayment)

	orders := r.Group("/orders")
	orders.POST("/:id/unlock", ordersController.UnlockOrder)

	guarded := orders.Group("")
	guarded.Use(middleware.GuestAuthMiddleware())
	guarded.GET("/:id", ordersController.GetOrder)
	guarded.GET("/:id/messages", messagesController.ListMessages)
	guarded.POST("/:id/messages", messagesController.SendMessage)
}
