/*
Package keybinds provides customizable keyboard binding management for the
snapgen terminal UI.

# Contexts

  - global: bindings available everywhere (force quit, tab switch)
  - form: the request form of the active tab
  - results: the generated result list
  - number_edit: typing a value into the number field of a slider pair

A key bound in a specific context shadows the same key in global.

# Configuration File Format

Overrides live in ~/.snapgen/keybinds.json. Each section maps an action to
a comma-separated list of keys. Listing an action replaces its default keys
in that context; actions not listed keep their defaults.

	{
	  "version": "1.0",
	  "form": {
	    "submit": "enter,ctrl+g",
	    "increment": "right,l"
	  },
	  "results": {
	    "copy": "y"
	  }
	}

Use the string "," to bind the comma key itself.
*/
package keybinds
