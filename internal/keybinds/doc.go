/*
Package keybinds provides customizable keyboard binding management.

Bindings live in contexts (global, editor, selector, dialog, confirm,
journal, help). A key is looked up in the active context first and then in
the global context.

Defaults are registered by NewDefaultRegistry. Users override them in
~/.kurator/keybinds.json, where each section maps an action to a comma
separated key list:

	{
	  "version": "1.0",
	  "editor": {
	    "submit": "ctrl+s,f9",
	    "suggest_instruction": "ctrl+g"
	  }
	}

Configuring an action replaces its default keys in that context. The
Validator reports unknown actions, rebound reserved keys (ctrl+c),
shadowed global bindings and modal contexts left without a way out.
*/
package keybinds
