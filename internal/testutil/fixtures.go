// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/swagrec/jsonvalue"
)

// PetstoreOAS3 is an OAS 3.0 document whose GET /pets operation reaches Pet
// directly and Owner through Pet.owner. Error is only used by POST /pets
// through a shared response, and Unused is referenced by nothing.
const PetstoreOAS3 = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
  description: Sample pet store
servers:
  - url: https://api.example.com/v1
tags:
  - name: pets
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      tags: [pets]
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
    post:
      operationId: createPet
      summary: Create a pet
      requestBody:
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/NewPet"
      responses:
        "201":
          description: created
        default:
          $ref: "#/components/responses/Problem"
  /pets/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: string
    get:
      operationId: getPet
      summary: Get a pet
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
    delete:
      operationId: deletePet
      deprecated: true
      responses:
        "204":
          description: deleted
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
        owner:
          $ref: "#/components/schemas/Owner"
    Owner:
      type: object
      properties:
        name:
          type: string
    NewPet:
      type: object
      properties:
        name:
          type: string
    Error:
      type: object
      properties:
        message:
          type: string
    Unused:
      type: string
  responses:
    Problem:
      description: problem
      content:
        application/json:
          schema:
            $ref: "#/components/schemas/Error"
`

// PetstoreOAS2 is the Swagger 2.0 counterpart of PetstoreOAS3.
const PetstoreOAS2 = `swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
host: api.example.com
basePath: /v1
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
    post:
      operationId: createPet
      parameters:
        - $ref: "#/parameters/PetBody"
      responses:
        "201":
          description: created
definitions:
  Pet:
    type: object
    properties:
      owner:
        $ref: "#/definitions/Owner"
  Owner:
    type: object
  NewPet:
    type: object
  Unused:
    type: string
parameters:
  PetBody:
    name: body
    in: body
    schema:
      $ref: "#/definitions/NewPet"
`

// MustParse decodes a JSON or YAML document, failing the test on error.
func MustParse(t testing.TB, src string) jsonvalue.Value {
	t.Helper()

	doc, err := jsonvalue.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return doc
}

// WriteTempYAML writes YAML source to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t testing.TB, src string) string {
	t.Helper()
	return writeTemp(t, "test.yaml", []byte(src))
}

// WriteTempJSON marshals a document to indented JSON and writes it to a
// temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t testing.TB, doc jsonvalue.Value) string {
	t.Helper()

	data, err := jsonvalue.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return writeTemp(t, "test.json", data)
}

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
