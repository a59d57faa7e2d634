// Package docs holds the swagger specification for the course portal API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Course Portal API Documentation",
        "title": "Course Portal API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "description": "Returns the full course catalog in insertion order",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Course catalog"
                    }
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Submit a course",
                "description": "Appends a course to the catalog. All fields except prerequisites and description are required.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "course",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "code": {"type": "string"},
                                "name": {"type": "string"},
                                "instructor": {"type": "string"},
                                "semester": {"type": "string"},
                                "schedule": {"type": "string"},
                                "classroom": {"type": "string"},
                                "prerequisites": {"type": "string"},
                                "grading": {"type": "string"},
                                "description": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Course created"
                    },
                    "400": {
                        "description": "Validation failure"
                    }
                }
            }
        },
        "/courses/{code}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course by code",
                "description": "Returns the first course whose code matches",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Course details"
                    },
                    "404": {
                        "description": "Course not found"
                    }
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
	Title:            "Course Portal API",
	Description:      "Course Portal API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
