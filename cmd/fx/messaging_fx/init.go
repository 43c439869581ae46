package messaging_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripdesk/internal/api/controllers"
	"tripdesk/internal/repositories"
	"tripdesk/internal/services"
)

var Module = fx.Provide(
	provideMessageRepo, provideMessageService, provideMessagesController)

func provideMessageRepo(db *gorm.DB) repositories.MessageRepository {
	return repositories.NewMessageRepository(db)
}

func provideMessageService(messageRepo repositories.MessageRepository) services.MessageServiceInterface {
	return services.NewMessageService(messageRepo)
}

func provideMessagesController(messageService services.MessageServiceInterface) *controllers.MessagesController {
	return controllers.NewMessagesController(messageService)
}
