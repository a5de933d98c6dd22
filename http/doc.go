// Package http provides the HTTP API for the galleria photo gallery server.
//
// # Routes
//
//	POST   /api/signup                      create account, returns a signed token (text/plain)
//	GET    /api/login                       Basic auth, returns a fresh signed token (text/plain)
//	POST   /api/gallery                     create gallery
//	GET    /api/gallery?page=&pagesize=     list own galleries
//	GET    /api/gallery/{id}                get gallery
//	PUT    /api/gallery/{id}                partial update
//	DELETE /api/gallery/{id}                delete gallery, its pictures and their images
//	POST   /api/gallery/{id}/pic            multipart upload (image, name, desc)
//	GET    /api/gallery/{id}/pic            list pictures
//	GET    /api/gallery/{id}/pic/{picID}    get picture
//	DELETE /api/gallery/{id}/pic/{picID}    delete picture
//	GET    /images/*                        image bytes (filesystem storage only)
//	GET    /healthz                         liveness
//
// Every /api/gallery route sits behind BearerAuth, which resolves
// `Authorization: Bearer <token>` through the credential store and stores the
// user in the request context (see UserFromContext).
//
// # Errors
//
// Handlers never write error statuses themselves. They pass errors to
// HandleError, which maps the root package sentinels to statuses and writes
// a JSON body:
//
//	{"error": "invalid_input", "message": "username is required"}
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{ServeImages: true}
//	handler := http.NewHandler(&handlerCfg, credentials, galleries, pictures)
//	http.ListenAndServe(":5708", handler.Router())
package http
