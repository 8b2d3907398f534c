package handler

import (
	"net/http"

	"dsc/core"
	"dsc/handler/render"
	"dsc/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	engine       core.IEngineService
	assets       core.IAssetStore
	token        core.IPeggedToken
	transactions core.ITransactionStore
}

// New new server function
func New(
	engine core.IEngineService,
	assets core.IAssetStore,
	token core.IPeggedToken,
	transactions core.ITransactionStore,
) Server {
	return Server{
		engine:       engine,
		assets:       assets,
		token:        token,
		transactions: transactions,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.engine, s.assets, s.token, s.transactions))
	return r
}
