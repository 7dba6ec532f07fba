package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "QuickDesk widget collaborator API documentation",
        "title": "QuickDesk API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/v1/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "description": "Returns one page of tasks in the widget fetch envelope",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "default": 1},
                    {"name": "limit", "in": "query", "type": "integer", "default": 5}
                ],
                "responses": {
                    "200": {"description": "Task page"}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "description": "Persists a client-created task record",
                "responses": {
                    "201": {"description": "Created task"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/api/v1/tasks/{id}": {
            "put": {
                "tags": ["Tasks"],
                "summary": "Update task",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated task"},
                    "404": {"description": "Task not found"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Task deleted"},
                    "404": {"description": "Task not found"}
                }
            }
        },
        "/api/v1/chats/{id}/messages": {
            "get": {
                "tags": ["Chats"],
                "summary": "List messages",
                "description": "Full message list for a conversation, polled by the widget",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Message list"},
                    "404": {"description": "Chat not found"}
                }
            },
            "post": {
                "tags": ["Chats"],
                "summary": "Send message",
                "description": "Confirms a send and returns the authoritative record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Confirmed message"},
                    "404": {"description": "Chat not found"}
                }
            }
        },
        "/api/v1/chats/{id}/read": {
            "post": {
                "tags": ["Chats"],
                "summary": "Mark chat read",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Watermark advanced"},
                    "404": {"description": "Chat not found"}
                }
            }
        },
        "/api/v1/inbox": {
            "get": {
                "tags": ["Inbox"],
                "summary": "List inbox threads",
                "responses": {
                    "200": {"description": "Thread summaries"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "QuickDesk API",
	Description:      "QuickDesk widget collaborator API documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
