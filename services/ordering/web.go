package ordering

import (
	"context"
	"net/http"
	"strconv"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/simmerfood/menubot/lib/mycontext"
	"github.com/simmerfood/menubot/lib/myerrors"
	"github.com/simmerfood/menubot/lib/myhttp"
	"github.com/simmerfood/menubot/lib/mylog"
	"github.com/simmerfood/menubot/lib/mypublisher"
	"github.com/simmerfood/menubot/lib/mytime"
	"github.com/simmerfood/menubot/lib/myuuid"
	"github.com/simmerfood/menubot/services/menu"
	"github.com/simmerfood/menubot/services/shopper"
)

type webService struct {
	service *Service
	logger  mylog.Logger
}

func NewWebService(menuStore *menu.Store, shopperStore *shopper.Store, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, limits Limits) *webService {
	logger := mylog.New("ordering")

	return &webService{
		service: NewService(menuStore, shopperStore, publisher, nower, uuider, logger, limits),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/menu/cuisines", s.cuisinesPage()).Methods("GET")
	router.HandleFunc("/menu/cuisines/{cuisineUID}/categories", s.categoriesPage()).Methods("GET")
	router.HandleFunc("/menu/cuisines/{cuisineUID}/categories/{categoryUID}/items", s.itemsPage()).Methods("GET")
	router.HandleFunc("/menu/categories", s.allCategoriesPage()).Methods("GET")
	router.HandleFunc("/menu/search", s.searchPage()).Methods("GET")

	router.HandleFunc("/api/shopper/{shopperUID}/items/{itemUID}", s.itemDetailsPage()).Methods("GET")
	router.HandleFunc("/api/shopper/{shopperUID}/favorites", s.favoritesPage()).Methods("GET")
	router.HandleFunc("/api/shopper/{shopperUID}/favorites/{itemUID}", s.toggleFavoritePage()).Methods("PUT")
	router.HandleFunc("/api/shopper/{shopperUID}/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/api/shopper/{shopperUID}/cart", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/api/shopper/{shopperUID}/cart/confirm", s.confirmOrderPage()).Methods("POST")
	router.HandleFunc("/api/shopper/{shopperUID}/cart/{itemUID}", s.addToCartPage()).Methods("POST")
	router.HandleFunc("/api/shopper/{shopperUID}/cart/{itemUID}", s.removeFromCartPage()).Methods("DELETE")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	return nil
}

type cartMutation struct {
	Quantity int `form:"quantity"`
}

func cartMutationFromRequest(r *http.Request) (cartMutation, error) {
	err := r.ParseForm()
	if err != nil {
		return cartMutation{}, myerrors.NewInvalidInputError(err)
	}

	mutation := cartMutation{Quantity: 1}
	err = formcodec.NewDecoder().Decode(&mutation, r.Form)
	if err != nil {
		return cartMutation{}, myerrors.NewInvalidInputError(err)
	}

	return mutation, nil
}

func (s *webService) cuisinesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		responseWriter.Write(c, w, http.StatusOK, s.service.ListCuisines(c))
	}
}

func (s *webService) categoriesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		cuisineUID := mux.Vars(r)["cuisineUID"]

		responseWriter.Write(c, w, http.StatusOK, s.service.ListCategories(c, cuisineUID))
	}
}

func (s *webService) allCategoriesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		responseWriter.Write(c, w, http.StatusOK, s.service.ListAllCategories(c))
	}
}

func (s *webService) itemsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		cuisineUID := mux.Vars(r)["cuisineUID"]
		categoryUID := mux.Vars(r)["categoryUID"]
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		listing := s.service.ListItems(c, cuisineUID, categoryUID, page)

		responseWriter.Write(c, w, http.StatusOK, Paginate(listing.Items, listing.Page, s.service.Limits().PageSize))
	}
}

func (s *webService) searchPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		result, err := s.service.SearchItems(c, r.URL.Query().Get("q"))
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		// show at most the display cap, but report the true match count
		maxResults := s.service.Limits().MaxSearchResults
		if len(result.Items) > maxResults {
			result.Items = result.Items[:maxResults]
		}

		responseWriter.Write(c, w, http.StatusOK, result)
	}
}

func (s *webService) itemDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]
		itemUID := mux.Vars(r)["itemUID"]

		details, err := s.service.GetItemDetails(c, shopperUID, itemUID)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, details)
	}
}

func (s *webService) favoritesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]

		favorites, err := s.service.ListFavorites(c, shopperUID)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, favorites)
	}
}

func (s *webService) toggleFavoritePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]
		itemUID := mux.Vars(r)["itemUID"]

		toggle, err := s.service.ToggleFavorite(c, shopperUID, itemUID)
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, toggle)
	}
}

func (s *webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]

		summary, err := s.service.GetCart(c, shopperUID)
		if err != nil {
			responseWriter.WriteError(c, w, 5, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, summary)
	}
}

func (s *webService) addToCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]
		itemUID := mux.Vars(r)["itemUID"]

		mutation, err := cartMutationFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 6, err)
			return
		}

		summary, err := s.service.AddToCart(c, shopperUID, itemUID, mutation.Quantity)
		if err != nil {
			responseWriter.WriteError(c, w, 6, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, summary)
	}
}

func (s *webService) removeFromCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]
		itemUID := mux.Vars(r)["itemUID"]

		mutation, err := cartMutationFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 7, err)
			return
		}

		summary, err := s.service.RemoveFromCart(c, shopperUID, itemUID, mutation.Quantity)
		if err != nil {
			responseWriter.WriteError(c, w, 7, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, summary)
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]

		summary, err := s.service.GetCartAfterClear(c, shopperUID)
		if err != nil {
			responseWriter.WriteError(c, w, 8, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, summary)
	}
}

func (s *webService) confirmOrderPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		shopperUID := mux.Vars(r)["shopperUID"]

		receipt, err := s.service.ConfirmOrder(c, shopperUID)
		if err != nil {
			responseWriter.WriteError(c, w, 9, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, receipt)
	}
}
