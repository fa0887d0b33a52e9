package command

import "github.com/santhosh-tekuri/jsonschema/v5"

const schemaURL = "https://etchsim.local/command-file.schema.json"

const schemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "etch command file",
  "type": "object",
  "required": ["startX", "startY", "etchWidth", "etchHeight", "pointerRadius", "commands"],
  "properties": {
    "startX": {"type": "number"},
    "startY": {"type": "number"},
    "etchWidth": {"type": "number", "exclusiveMinimum": 0},
    "etchHeight": {"type": "number", "exclusiveMinimum": 0},
    "pointerRadius": {"type": "number", "exclusiveMinimum": 0},
    "commands": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "lineEnd"],
        "properties": {
          "type": {"type": "string"},
          "lineEnd": {
            "type": "object",
            "required": ["x", "y"],
            "properties": {
              "x": {"type": "number"},
              "y": {"type": "number"}
            }
          }
        }
      }
    }
  }
}`

var fileSchema = jsonschema.MustCompileString(schemaURL, schemaSource)
