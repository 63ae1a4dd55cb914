package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// UI - Slot list
	"slots.title":        "Save Slots",
	"slots.col_slot":     "Slot",
	"slots.col_org":      "Organisation",
	"slots.col_version":  "Version",
	"slots.col_networth": "Networth",
	"slots.col_created":  "Created",
	"slots.none":         "No save files found",
	"slots.hint":         "enter open · n new save · q quit",

	// UI - Summary page
	"summary.title":         "Save Summary",
	"summary.organisation":  "Organisation",
	"summary.game_version":  "Game Version",
	"summary.created":       "Created",
	"summary.online":        "Online Balance",
	"summary.networth":      "Networth",
	"summary.lifetime":      "Lifetime Earnings",
	"summary.weekly":        "Weekly Deposit Sum",
	"summary.rank":          "Rank",
	"summary.tier":          "Tier",
	"summary.properties":    "Properties",
	"summary.npcs":          "NPCs",
	"summary.hint":          "enter edit · esc back",

	// UI - Editor tabs
	"tab.money":      "Money",
	"tab.rank":       "Rank",
	"tab.properties": "Properties",
	"tab.products":   "Products",
	"tab.unlocks":    "Unlocks",
	"tab.npcs":       "NPCs",
	"tab.misc":       "Misc",
	"tab.backups":    "Backups",

	// UI - Field labels
	"field.online":       "Online balance",
	"field.networth":     "Networth",
	"field.lifetime":     "Lifetime earnings",
	"field.weekly":       "Weekly deposit sum",
	"field.rank_name":    "Rank name",
	"field.rank_value":   "Rank",
	"field.tier":         "Tier",
	"field.organisation": "Organisation name",
	"field.prop_type":    "Property type",
	"field.quantity":     "Quantity",
	"field.quality":      "Quality",
	"field.packaging":    "Packaging",
	"field.filter":       "Item filter",
	"field.count":        "Count",
	"field.id_length":    "ID length",
	"field.price":        "Price",
	"field.product_ids":  "Product IDs (comma separated)",
	"field.listed":       "Add generated products to listed",
	"field.overwrite":    "Overwrite existing mod",
	"field.npc_log":      "Paste the player.log lines here...",

	// UI - Actions
	"action.apply":            "Apply",
	"action.complete_quests":  "Complete all quests",
	"action.modify_variables": "Maximize variables",
	"action.unlock_rank":      "Unlock rank progression",
	"action.own_properties":   "Own all properties",
	"action.own_businesses":   "Own all businesses",
	"action.unlock_npcs":      "Unlock all NPCs",
	"action.recruit_dealers":  "Recruit all dealers",
	"action.import_npc_log":   "Import NPCs from log",
	"action.discover":         "Discover products",
	"action.generate":         "Generate products",
	"action.remove":           "Remove discovered products",
	"action.reset_generated":  "Delete generated products",
	"action.restore":          "Restore",
	"action.restore_all":      "Restore everything",
	"action.purge_backups":    "Delete all backups",
	"action.new_save":         "Generate new save",
	"action.install_mod":      "Install achievement mod",

	// UI - Status bar
	"status.ready":       "Ready",
	"status.working":     "Working...",
	"status.downloading": "Downloading %s...",
	"status.saved":       "Changes written",

	// UI - Keybindings
	"keys.tabs":   "tab/shift+tab switch",
	"keys.apply":  "enter apply",
	"keys.back":   "esc back",
	"keys.quit":   "q quit",
	"keys.help":   "? help",

	// Confirmation
	"confirm.write":       "Apply these changes? [y/N]",
	"confirm.restore":     "Restore %s from %s? [y/N]",
	"confirm.restore_all": "Restore the entire save from the initial backup? [y/N]",
	"confirm.purge":       "Delete every backup for this slot? [y/N]",
	"confirm.overwrite":   "The mod is already installed. Overwrite? [y/N]",
	"confirm.cancelled":   "Cancelled",

	// Results
	"result.stats":         "Stats updated",
	"result.properties":    "Items updated: %d",
	"result.quests":        "Quests completed: %d (objectives: %d)",
	"result.variables":     "Variables modified: %d",
	"result.rank":          "Rank progression unlocked",
	"result.ownership":     "%s updated: %d",
	"result.npcs_unlocked": "NPC relationships unlocked: %d",
	"result.dealers":       "Dealers recruited: %d",
	"result.npcs_imported": "NPC folders generated: %d",
	"result.discovered":    "Products discovered: %d",
	"result.generated":     "Products generated: %d",
	"result.removed":       "Products removed: %d",
	"result.reset":         "Generated products deleted: %d",
	"result.restored":      "Backup restored: %s",
	"result.restored_all":  "Save restored from initial backup",
	"result.purged":        "Backups deleted",
	"result.new_save":      "New save created: %s",
	"result.mod_installed": "Mod installed: %s",

	// Backups page
	"backup.col_feature": "Feature",
	"backup.col_stamp":   "Timestamp",
	"backup.none":        "No backups yet",
	"backup.initial":     "initial",

	// Errors
	"error.load":        "Failed to read save: %s",
	"error.write":       "Write failed: %s",
	"error.validation":  "Invalid %s: %s",
	"error.download":    "Download failed: %s",
	"error.backup":      "Backup failed: %s",
	"error.no_backup":   "No backup found",
	"error.slots_full":  "All save slots are in use",
	"error.no_game_dir": "Game installation not found",
	"error.no_saves":    "No save directory found",

	// Startup
	"startup.welcome": "Schedule I save editor — saves at: %s",
	"startup.cli":     "Running in command-line mode",
}
