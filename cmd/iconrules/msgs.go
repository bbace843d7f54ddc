package main

// Short messages (one-liners)
const (
	MsgRootShort    = "Assign icons to vault entries with pattern rules"
	MsgRootLong     = `iconrules matches user defined pattern rules against the files and folders
of a vault, assigns the first matching rule's icon to every entry and replaces
icon shortcodes such as :LiStar: in entry labels with the icon itself.`
	MsgMatchShort   = "Show which rule applies to every entry of a vault"
	MsgApplyShort   = "Apply all rules to a vault and print the resulting tree"
	MsgRulesShort   = "List the configured rules in application order"
	MsgLabelShort   = "Replace icon shortcodes in a label and print the markup"
	MsgWatchShort   = "Apply rules to a vault and keep them applied as files change"
	MsgConfigShort  = "Inspect configuration"
	MsgDumpShort    = "Print the effective configuration"
	MsgInitShort    = "Print a commented configuration template"
	MsgVersionShort = "Print version information"

	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/iconrules/config.toml)"
	MsgFlagOutput   = "Output format: auto, text, term, yaml or toml"
	MsgFlagIcons    = "Directory of icon packs, overriding icons.dir"
	MsgFlagNoInject = "Disable label shortcode injection"

	MsgWatching = "Watching %s (Ctrl-C to stop)"
	MsgCreated  = "+ %s"
	MsgDeleted  = "- %s"
	MsgRenamed  = "~ %s -> %s"
)
