// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/cache"
	"github.com/frageo/frageo/internal/chat"
	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/platform/ctxutil"
	"github.com/frageo/frageo/pkg/pagination"
)

// ChatPanel is the slice of the chat client the pages need.
type ChatPanel interface {
	Messages() []chat.Message
	Send(content string) error
}

// PageHandler renders the public page tree.
type PageHandler struct {
	services *rest.Services
	chat     ChatPanel
	renderer *Renderer
	pages    *cache.Store
	log      *slog.Logger
}

// NewPageHandler constructs the page handler set.
func NewPageHandler(services *rest.Services, chatPanel ChatPanel, renderer *Renderer, pages *cache.Store, log *slog.Logger) *PageHandler {
	return &PageHandler{
		services: services,
		chat:     chatPanel,
		renderer: renderer,
		pages:    pages,
		log:      log,
	}
}

// Routes returns the public page routes.
func (handler *PageHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.home)
	router.Get("/forum", handler.forum)
	router.Get("/forum/threads/{threadID}", handler.thread)
	router.Get("/users", handler.users)
	router.Get("/users/{userID}", handler.profile)
	router.Get("/chat", handler.chatPage)
	router.Post("/chat", handler.chatSend)

	return router
}

// # Cached Page Serving

// serveCached serves a page from the Redis page cache for anonymous callers,
// rendering and storing it on a miss. Authenticated requests always render
// fresh because the layout embeds session state.
func (handler *PageHandler) serveCached(writer http.ResponseWriter, request *http.Request, path, page string, build func() view) {
	ctx := request.Context()
	anonymous := ctxutil.GetSession(ctx) == nil

	if anonymous {
		if fragment, found := handler.pages.Get(ctx, path); found {
			writer.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = writer.Write(fragment)
			return
		}
	}

	data := build()
	data.Session = ctxutil.GetSession(ctx)
	data.Flash = request.URL.Query().Get("flash")
	data.Error = request.URL.Query().Get("error")

	rendered, err := handler.renderer.RenderBytes(page, data)
	if err != nil {
		handler.log.Error("render_failed", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	// Only clean anonymous renders are cacheable; flash notices are one-shot.
	if anonymous && data.Flash == "" && data.Error == "" {
		handler.pages.Set(ctx, path, rendered)
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = writer.Write(rendered)
}

// render writes an uncached page with the session and notices attached.
func (handler *PageHandler) render(writer http.ResponseWriter, request *http.Request, status int, page string, data view) {
	data.Session = ctxutil.GetSession(request.Context())
	data.Flash = request.URL.Query().Get("flash")
	data.Error = request.URL.Query().Get("error")
	handler.renderer.Render(writer, status, page, data)
}

// # Pages

// homeData is the payload of the home page.
type homeData struct {
	LatestThreads []rest.Thread
	Servers       []rest.Server
	OnlineUsers   []rest.User
}

// home handles GET /.
//
// The three sections load in parallel; each degrades independently.
func (handler *PageHandler) home(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	log := ctxutil.GetLogger(ctx)

	handler.serveCached(writer, request, constants.PathHome, "home", func() view {
		var data homeData

		settle(
			func() {
				data.LatestThreads = fetchPage(ctx, log, "latest_threads", func(c context.Context) (*rest.Page[rest.Thread], error) {
					return handler.services.Forum.LatestThreads(c, 10)
				})
			},
			func() {
				data.Servers = fetchPage(ctx, log, "servers", func(c context.Context) (*rest.Page[rest.Server], error) {
					return handler.services.Servers.List(c)
				})
			},
			func() {
				data.OnlineUsers = fetchPage(ctx, log, "online_users", func(c context.Context) (*rest.Page[rest.User], error) {
					return handler.services.Users.Online(c)
				})
			},
		)

		return view{Title: "Home", Data: data}
	})
}

// forumData is the payload of the forum listing.
type forumData struct {
	Categories []rest.Category
	Threads    []rest.Thread
	CategoryID int
}

// forum handles GET /forum with an optional ?category= filter.
func (handler *PageHandler) forum(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	log := ctxutil.GetLogger(ctx)

	categoryID, _ := strconv.Atoi(request.URL.Query().Get("category"))
	params := pagination.FromRequest(request)

	build := func() view {
		data := forumData{CategoryID: categoryID}

		settle(
			func() {
				data.Categories = fetchPage(ctx, log, "categories", func(c context.Context) (*rest.Page[rest.Category], error) {
					return handler.services.Forum.Categories(c)
				})
			},
			func() {
				data.Threads = fetchPage(ctx, log, "threads", func(c context.Context) (*rest.Page[rest.Thread], error) {
					return handler.services.Forum.Threads(c, categoryID, params.Page, params.Limit)
				})
			},
		)

		return view{Title: "Forum", Data: data}
	}

	// Only the unfiltered first page is cacheable under the canonical path
	if categoryID == 0 && params.Page == 1 {
		handler.serveCached(writer, request, constants.PathForum, "forum", build)
		return
	}

	handler.render(writer, request, http.StatusOK, "forum", build())
}

// threadData is the payload of the thread view.
type threadData struct {
	Thread *rest.Thread
	Posts  []rest.Post
}

// thread handles GET /forum/threads/{threadID}.
func (handler *PageHandler) thread(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	log := ctxutil.GetLogger(ctx)

	threadID, err := strconv.Atoi(chi.URLParam(request, "threadID"))
	if err != nil {
		handler.notFound(writer, request)
		return
	}

	params := pagination.FromRequest(request)

	var data threadData
	settle(
		func() {
			data.Thread = fetchOne(ctx, log, "thread", func(c context.Context) (*rest.Thread, error) {
				return handler.services.Forum.Thread(c, threadID)
			})
		},
		func() {
			data.Posts = fetchPage(ctx, log, "posts", func(c context.Context) (*rest.Page[rest.Post], error) {
				return handler.services.Forum.Posts(c, threadID, params.Page, params.Limit)
			})
		},
	)

	if data.Thread == nil {
		handler.notFound(writer, request)
		return
	}

	handler.render(writer, request, http.StatusOK, "thread", view{Title: data.Thread.Title, Data: data})
}

// usersData is the payload of the members listing.
type usersData struct {
	Users []rest.User
}

// users handles GET /users.
func (handler *PageHandler) users(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	log := ctxutil.GetLogger(ctx)

	params := pagination.FromRequest(request)

	build := func() view {
		data := usersData{
			Users: fetchPage(ctx, log, "users", func(c context.Context) (*rest.Page[rest.User], error) {
				return handler.services.Users.List(c, params.Page, params.Limit)
			}),
		}
		return view{Title: "Members", Data: data}
	}

	if params.Page == 1 {
		handler.serveCached(writer, request, constants.PathUsers, "users", build)
		return
	}
	handler.render(writer, request, http.StatusOK, "users", build())
}

// profileData is the payload of the profile page.
type profileData struct {
	User   *rest.User
	IsSelf bool
}

// profile handles GET /users/{userID}.
func (handler *PageHandler) profile(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	userID, err := strconv.Atoi(chi.URLParam(request, "userID"))
	if err != nil {
		handler.notFound(writer, request)
		return
	}

	user, err := handler.services.Users.GetByID(ctx, userID)
	if err != nil {
		handler.notFound(writer, request)
		return
	}

	sess := ctxutil.GetSession(ctx)
	data := profileData{
		User:   user,
		IsSelf: sess != nil && sess.User.ID == user.ID,
	}

	handler.render(writer, request, http.StatusOK, "profile", view{Title: user.Username, Data: data})
}

// chatData is the payload of the chat panel.
type chatData struct {
	Messages []chat.Message
}

// chatPage handles GET /chat, rendering the current history snapshot.
func (handler *PageHandler) chatPage(writer http.ResponseWriter, request *http.Request) {
	data := chatData{Messages: handler.chat.Messages()}
	handler.render(writer, request, http.StatusOK, "chat", view{Title: "Chat", Data: data})
}

// chatSend handles POST /chat.
func (handler *PageHandler) chatSend(writer http.ResponseWriter, request *http.Request) {
	if ctxutil.GetSession(request.Context()) == nil {
		http.Redirect(writer, request, "/login", http.StatusSeeOther)
		return
	}

	if err := request.ParseForm(); err != nil {
		http.Redirect(writer, request, "/chat?error=Invalid+form", http.StatusSeeOther)
		return
	}

	content := request.PostFormValue("content")
	if content == "" {
		http.Redirect(writer, request, "/chat", http.StatusSeeOther)
		return
	}

	if err := handler.chat.Send(content); err != nil {
		http.Redirect(writer, request, "/chat?error=Chat+is+unavailable", http.StatusSeeOther)
		return
	}

	http.Redirect(writer, request, "/chat", http.StatusSeeOther)
}

// notFound renders the shared error page.
func (handler *PageHandler) notFound(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusNotFound, "error", view{
		Title: "Not found",
		Data:  map[string]any{"Status": 404, "Message": "The page you are looking for does not exist."},
	})
}
