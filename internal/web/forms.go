// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frageo/frageo/internal/actions"
	"github.com/frageo/frageo/internal/platform/ctxutil"
)

// FormHandler binds member-facing forms to the server actions.
//
// Every route here requires an established session; the router mounts this
// handler behind the session guard. Handlers parse the form, invoke one
// action, and redirect with a one-shot notice.
type FormHandler struct {
	actions *actions.Actions
}

// NewFormHandler constructs the member form handler set.
func NewFormHandler(actionSet *actions.Actions) *FormHandler {
	return &FormHandler{actions: actionSet}
}

// redirectResult turns an action outcome into a redirect with a notice.
func redirectResult(writer http.ResponseWriter, request *http.Request, target, flash, failMessage string, fields []string) {
	if failMessage != "" {
		message := failMessage
		if len(fields) > 0 && fields[0] != "" {
			message = fields[0]
		}
		http.Redirect(writer, request, target+"?error="+url.QueryEscape(message), http.StatusSeeOther)
		return
	}
	http.Redirect(writer, request, target+"?flash="+url.QueryEscape(flash), http.StatusSeeOther)
}

// firstFieldMessage extracts the leading field error, if any.
func firstFieldMessage[T any](result actions.Result[T]) []string {
	if len(result.Fields) == 0 {
		return nil
	}
	return []string{result.Fields[0].Message}
}

// # Account Settings

// changeUsername handles POST /settings/username.
func (handler *FormHandler) changeUsername(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	result := handler.actions.ChangeUsername(request.Context(), sess, request.PostFormValue("username"))
	redirectResult(writer, request, handler.profilePath(request), "Username changed", result.Message, firstFieldMessage(result))
}

// requestEmailChange handles POST /settings/email.
func (handler *FormHandler) requestEmailChange(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	result := handler.actions.RequestEmailChange(request.Context(), sess, request.PostFormValue("email"))
	redirectResult(writer, request, handler.profilePath(request), "Confirmation code sent to the new address", result.Message, firstFieldMessage(result))
}

// confirmEmailChange handles POST /settings/email/confirm.
func (handler *FormHandler) confirmEmailChange(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	result := handler.actions.ConfirmEmailChange(request.Context(), sess, request.PostFormValue("code"))
	redirectResult(writer, request, handler.profilePath(request), "Email address updated", result.Message, firstFieldMessage(result))
}

// changeAvatar handles POST /settings/avatar (multipart).
func (handler *FormHandler) changeAvatar(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())

	file, header, err := request.FormFile("avatar")
	if err != nil {
		http.Redirect(writer, request, handler.profilePath(request)+"?error="+url.QueryEscape("Choose an image to upload"), http.StatusSeeOther)
		return
	}
	defer file.Close()

	result := handler.actions.ChangeAvatar(request.Context(), sess, header.Filename, file)
	redirectResult(writer, request, handler.profilePath(request), "Avatar updated", result.Message, firstFieldMessage(result))
}

// deleteAvatar handles POST /settings/avatar/delete.
func (handler *FormHandler) deleteAvatar(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())

	result := handler.actions.DeleteAvatar(request.Context(), sess)
	redirectResult(writer, request, handler.profilePath(request), "Avatar removed", result.Message, firstFieldMessage(result))
}

// profilePath points back at the caller's own profile.
func (handler *FormHandler) profilePath(request *http.Request) string {
	sess := ctxutil.GetSession(request.Context())
	if sess == nil {
		return "/"
	}
	return fmt.Sprintf("/users/%d", sess.User.ID)
}

// # Forum Forms

// createThread handles POST /forum/threads.
func (handler *FormHandler) createThread(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	categoryID, _ := strconv.Atoi(request.PostFormValue("category_id"))
	result := handler.actions.CreateThread(request.Context(), sess, actions.CreateThreadInput{
		Title:      request.PostFormValue("title"),
		Content:    request.PostFormValue("content"),
		CategoryID: categoryID,
	})

	if !result.OK() {
		redirectResult(writer, request, "/forum", "", result.Message, firstFieldMessage(result))
		return
	}

	http.Redirect(writer, request, fmt.Sprintf("/forum/threads/%d", result.Data.ID), http.StatusSeeOther)
}

// createPost handles POST /forum/threads/{threadID}/posts.
func (handler *FormHandler) createPost(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	threadID, err := strconv.Atoi(chi.URLParam(request, "threadID"))
	if err != nil {
		http.Redirect(writer, request, "/forum", http.StatusSeeOther)
		return
	}

	result := handler.actions.CreatePost(request.Context(), sess, threadID, request.PostFormValue("content"))
	threadPath := fmt.Sprintf("/forum/threads/%d", threadID)
	redirectResult(writer, request, threadPath, "Reply posted", result.Message, firstFieldMessage(result))
}
