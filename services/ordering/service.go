package ordering

import (
	"context"
	"fmt"

	"github.com/simmerfood/menubot/lib/mylog"
	"github.com/simmerfood/menubot/lib/mypublisher"
	"github.com/simmerfood/menubot/lib/mytime"
	"github.com/simmerfood/menubot/lib/myuuid"
	"github.com/simmerfood/menubot/services/menu"
	"github.com/simmerfood/menubot/services/ordering/orderingevents"
	"github.com/simmerfood/menubot/services/shopper"
)

// Service is the operation surface between the transport layer and the two
// stores. All business rules live here: validation, limits, not-found
// handling and the atomic order confirmation.
type Service struct {
	menu      *menu.Store
	shoppers  *shopper.Store
	publisher mypublisher.Publisher
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
	limits    Limits
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(menuStore *menu.Store, shopperStore *shopper.Store, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, limits Limits) *Service {
	return &Service{
		menu:      menuStore,
		shoppers:  shopperStore,
		publisher: publisher,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
		limits:    limits,
	}
}

func (s *Service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, orderingevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderingevents.TopicName, err)
	}

	return nil
}

func (s *Service) Limits() Limits {
	return s.limits
}
