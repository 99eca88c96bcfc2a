package ordering

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/simmerfood/menubot/lib/mypublisher"
	"github.com/simmerfood/menubot/lib/mytime"
	"github.com/simmerfood/menubot/lib/myuuid"
	"github.com/simmerfood/menubot/services/ordering/orderingevents"
	"github.com/simmerfood/menubot/services/shopper"
)

func TestOrderingWeb(t *testing.T) {
	t.Run("List cuisines", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/menu/cuisines", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "Italian")
		assert.Contains(t, got, "Asian")
	})

	t.Run("List items is paginated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/menu/cuisines/italian/categories/pizza/items?page=0", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "Margherita Pizza")
		assert.Contains(t, got, "\"TotalCount\": 2")
	})

	t.Run("Search with too short query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/menu/search?q=p", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Search reports true match count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/menu/search?q=pizza", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "\"TotalCount\": 3")
	})

	t.Run("Item details of unknown item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/shopper/shopper-1/items/nope", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Toggle favorite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/shopper/shopper-1/favorites/p1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "\"Added\": true")
	})

	t.Run("Add to cart with quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/p1", strings.NewReader("quantity=2"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "\"Total\": 900")
	})

	t.Run("Add unknown item to cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/nope", http.NoBody)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Cart line limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		limits := DefaultLimits()
		limits.MaxCartLines = 1
		_, router, _, _, _ := webSetupWithLimits(t, ctrl, limits)

		// given
		request, err := http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/p1", http.NoBody)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)
		assert.Equal(t, 200, response.Code)

		// when
		request, err = http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/p2", http.NoBody)
		assert.NoError(t, err)
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 422, response.Code)
	})

	t.Run("Confirm empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/confirm", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 409, response.Code)
	})

	t.Run("Confirm filled cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, nower, uuider, publisher := webSetup(t, ctrl)

		// given
		request, err := http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/p1", strings.NewReader("quantity=2"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)
		assert.Equal(t, 200, response.Code)

		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("receipt-123")
		publisher.EXPECT().Publish(gomock.Any(), orderingevents.TopicName, orderingevents.OrderConfirmed{
			ReceiptUID: "receipt-123",
			ShopperUID: "shopper-1",
			Total:      900,
		}).Return(nil)

		// when
		request, err = http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/confirm", nil)
		assert.NoError(t, err)
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "receipt-123")
		assert.Contains(t, got, "\"Total\": 900")

		// and the cart is empty again
		request, err = http.NewRequest(http.MethodGet, "/api/shopper/shopper-1/cart", nil)
		assert.NoError(t, err)
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "\"Total\": 0")
	})

	t.Run("Clear cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := webSetup(t, ctrl)

		// given
		request, err := http.NewRequest(http.MethodPost, "/api/shopper/shopper-1/cart/p1", http.NoBody)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)
		assert.Equal(t, 200, response.Code)

		// when
		request, err = http.NewRequest(http.MethodDelete, "/api/shopper/shopper-1/cart", nil)
		assert.NoError(t, err)
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "\"Total\": 0")
	})
}

func webSetup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	return webSetupWithLimits(t, ctrl, DefaultLimits())
}

func webSetupWithLimits(t *testing.T, ctrl *gomock.Controller, limits Limits) (context.Context, *mux.Router, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	c := context.TODO()

	menuStore := testMenu(t)
	shopperStore, cleanup, err := shopper.NewStore(c, menuStore)
	assert.NoError(t, err)
	t.Cleanup(cleanup)

	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	sut := NewWebService(menuStore, shopperStore, publisher, nower, uuider, limits)
	router := mux.NewRouter()

	// This is called by the following call to RegisterEndpoints()
	publisher.EXPECT().CreateTopic(c, orderingevents.TopicName).Return(nil)

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, nower, uuider, publisher
}
