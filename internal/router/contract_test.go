package router_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

const messageSchema = `{
  "type": "object",
  "required": ["message"],
  "properties": {"message": {"type": "string", "minLength": 1}}
}`

const loginSchema = `{
  "type": "object",
  "required": ["message", "token", "user"],
  "properties": {
    "message": {"const": "Login successful"},
    "token": {"type": "string", "minLength": 1},
    "user": {
      "type": "object",
      "required": ["id", "name", "role", "faculty"],
      "additionalProperties": false,
      "properties": {
        "id": {"type": "integer", "minimum": 1},
        "name": {"type": "string"},
        "role": {"enum": ["student", "lecturer", "prl", "pl"]},
        "faculty": {"type": "string"}
      }
    }
  }
}`

const classSchema = `{
  "type": "object",
  "required": ["id", "name", "scheduled_time", "venue", "total_registered", "course_id", "course_name", "course_code", "lecturer_id", "lecturer_name"],
  "properties": {
    "id": {"type": "integer"},
    "total_registered": {"type": "integer", "minimum": 0},
    "lecturer_id": {"type": ["integer", "null"]},
    "lecturer_name": {"type": ["string", "null"]}
  }
}`

const reportListSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "topic_taught", "actual_students_present", "status", "prl_feedback", "prl_id", "class_name", "course_name", "course_code", "lecturer_name", "prl_name", "created_at"],
    "properties": {
      "status": {"enum": ["pending", "reviewed"]},
      "prl_feedback": {"type": ["string", "null"]},
      "created_at": {"type": "string"}
    }
  }
}`

const facultySchema = `{
  "type": "object",
  "required": ["coursesCount", "classesCount", "reportsCount"],
  "additionalProperties": false,
  "properties": {
    "coursesCount": {"type": "integer", "minimum": 0},
    "classesCount": {"type": "integer", "minimum": 0},
    "reportsCount": {"type": "integer", "minimum": 0}
  }
}`

func compileSchema(t *testing.T, name, source string) *jsonschema.Schema {
	t.Helper()

	url := "mem://contracts/" + name + ".schema.json"
	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource(url, strings.NewReader(source)))
	schema, err := compiler.Compile(url)
	require.NoError(t, err)
	return schema
}

func requireContract(t *testing.T, schema *jsonschema.Schema, raw []byte) {
	t.Helper()

	var payload interface{}
	require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	require.NoError(t, schema.Validate(payload), string(raw))
}

func TestResponseContracts(t *testing.T) {
	server := setupServer(t)
	pl := server.signUp(t, "Thabo", "thabo@luct.test", models.RolePL, "FICT")
	lecturer := server.signUp(t, "Palesa", "palesa@luct.test", models.RoleLecturer, "FICT")
	prl := server.signUp(t, "Mpho", "mpho@luct.test", models.RolePRL, "FICT")

	message := compileSchema(t, "message", messageSchema)

	status, raw := server.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "thabo@luct.test", "password": "pass123"})
	require.Equal(t, fiber.StatusOK, status)
	requireContract(t, compileSchema(t, "login", loginSchema), raw)

	status, raw = server.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "thabo@luct.test", "password": "nope"})
	require.Equal(t, fiber.StatusUnauthorized, status)
	requireContract(t, message, raw)

	status, raw = server.do(t, http.MethodPost, "/api/courses", lecturer.Token, map[string]string{"name": "Web", "code": "W1", "faculty": "FICT"})
	require.Equal(t, fiber.StatusForbidden, status)
	requireContract(t, message, raw)

	_, courseBody := server.object(t, http.MethodPost, "/api/courses", pl.Token, map[string]string{"name": "Web", "code": "W1", "faculty": "FICT"})
	courseID := courseBody["course"].(map[string]interface{})["id"]

	_, classBody := server.object(t, http.MethodPost, "/api/classes", pl.Token, map[string]interface{}{"course_id": courseID, "name": "Group A", "lecturer_id": lecturer.ID})
	classJSON, err := json.Marshal(classBody["class"])
	require.NoError(t, err)
	requireContract(t, compileSchema(t, "class", classSchema), classJSON)

	classID := classBody["class"].(map[string]interface{})["id"]
	status, _ = server.do(t, http.MethodPost, "/api/reports", lecturer.Token, map[string]interface{}{"class_id": classID, "topic_taught": "HTML", "actual_students_present": 12, "prl_id": prl.ID})
	require.Equal(t, fiber.StatusOK, status)

	status, raw = server.do(t, http.MethodGet, "/api/reports", prl.Token, nil)
	require.Equal(t, fiber.StatusOK, status)
	requireContract(t, compileSchema(t, "reports", reportListSchema), raw)

	status, raw = server.do(t, http.MethodGet, "/api/faculty/FICT", prl.Token, nil)
	require.Equal(t, fiber.StatusOK, status)
	requireContract(t, compileSchema(t, "faculty", facultySchema), raw)
}
