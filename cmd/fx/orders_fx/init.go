package orders_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripdesk/internal/api/controllers"
	"tripdesk/internal/repositories"
	"tripdesk/internal/services"
)

var Module = fx.Provide(
	provideOrderRepo, provideOrderService, provideOrdersController)

func provideOrderRepo(db *gorm.DB) repositories.OrderRepository {
	return repositories.NewOrderRepository(db)
}

func provideOrderService(orderRepo repositories.OrderRepository) services.OrderServiceInterface {
	return services.NewOrderService(orderRepo)
}

func provideOrdersController(orderService services.OrderServiceInterface) *controllers.OrdersController {
	return controllers.NewOrdersController(orderService)
}
