// Package docs registers the OpenAPI description served under /swag/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/webhook": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Webhook"],
                "summary": "Estado del webhook",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Webhook"],
                "summary": "Webhook de contenido",
                "responses": {
                    "200": {"description": "Evento procesado"},
                    "204": {"description": "Evento reconocido pero no accionable"},
                    "400": {"description": "JSON inválido o errores de validación"},
                    "401": {"description": "Secreto compartido incorrecto"},
                    "409": {"description": "Slug duplicado"},
                    "500": {"description": "Error del content store"}
                }
            }
        },
        "/cache/revalidate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Caché"],
                "summary": "Limpiar caché del blog",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Secreto compartido incorrecto"}
                }
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Blog"],
                "summary": "Lista de posts",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/posts/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Blog"],
                "summary": "Obtener un post",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Post no encontrado"}
                }
            }
        },
        "/contact": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Contacto"],
                "summary": "Formulario de contacto",
                "responses": {
                    "201": {"description": "Lead registrado"},
                    "400": {"description": "Formato de solicitud inválido"}
                }
            }
        },
        "/newsletter/subscribe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Contacto"],
                "summary": "Suscripción al newsletter",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Formato de solicitud inválido"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Login de administración",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Credenciales inválidas"}
                }
            }
        },
        "/admin/leads": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Lista de leads",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/subscribers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Lista de suscriptores",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Astra Consulting API",
	Description:      "API del sitio de Astra Consulting: webhook de contenido, blog, contacto y newsletter.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
