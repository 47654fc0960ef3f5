// Package docs registers the OpenAPI description served under /swagger.
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
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Create an account and its game profile id", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/player": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["player"], "summary": "Current profile", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Saved progress is corrupted"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["player"], "summary": "Delete all progress and start over", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/player/refresh": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["player"], "summary": "Run the daily and weekly boundary check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/player/name": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["player"], "summary": "Rename the player", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/player/settings": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["player"], "summary": "Change one setting", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/quests": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["quests"], "summary": "Today's quests and the weekly challenge", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/quests/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["quests"], "summary": "Completion statistics over the quest history", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/quests/{id}/complete": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["quests"], "summary": "Complete one of today's quests", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Quest ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Quest already completed"}}}
        },
        "/habits/{kind}": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["habits"], "summary": "Log a habit", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Habit kind", "name": "kind", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/achievements": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["achievements"], "summary": "Achievement catalogue with unlock state", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "HealthQuest API",
	Description:      "Habit tracking with RPG progression: quests, streaks, skills and achievements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
