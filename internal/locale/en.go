package locale

var en = map[string]string{
	"not_found": "Reply not found for the selected language.",

	"permission_denied.default":      "You don't have the right to use this command!",
	"permission_denied.target_admin": "You can't target an admin.",
	"permission_denied.owner_only":   "You must be owner.",
	"permission_denied.admin_only":   "You must be admin with the right permissions.",
	"permission_denied.restricted":   "Your use of the command is subject to restrictions.",
	"permission_denied.not_found":    "You weren't in the database, try again.",

	"notifications.bot":     "The bot is",
	"notifications.on":      "Notifications turned on.",
	"notifications.off":     "Notifications turned off.",
	"notifications.online":  "online",
	"notifications.offline": "offline",

	"greet": "Hi",

	"history.page404": "Page not found!",

	"about": "Bot developed by @Supergiuchannel, the code is available on Github.",

	"choose_target": "Write the user's name:",

	"choose_argument.not_found":      "User not found.",
	"choose_argument.selected":       "User selected:",
	"choose_argument.argument":       "Write the argument:",
	"choose_argument.multiple_found": "Multiple users found! Select the user's id.",

	"set_lang.choice":       "Which language do you want to use?",
	"set_lang.confirmation": "will now receive messages in",

	"handle_media.audio": "I lost my earbuds and I can't listen to what you sent",
	"handle_media.image": "I lost my glasses and I can't see what you sent",

	"banned_words.banned":           "banned.",
	"banned_words.already_banned":   "The word is already banned.",
	"banned_words.already_unbanned": "The word wasn't already banned.",
	"banned_words.add_banned":       "Which word do you want to ban?",
	"banned_words.remove_banned":    "Which word do you want to unban from this category?",
	"banned_words.add_ultrabanned":  "Which word do you want to hyperban?",
	"banned_words.unbanned":         "unbanned",

	"sent": "Sent!",

	"cancel": "Operation cancelled.",
	"expired": "The pending operation expired, start over.",

	"qrcode.error":       "Error, please send this message to",
	"qrcode.msg_to_send": "Send some text and I'll generate a QR code",

	"broadcast.msg_to_send": "What do you want to send in broadcast?",
	"broadcast.from":        "Announcement by",
	"broadcast.admin_from":  "Message to admin from",

	"send_to.admins":      "What do you want to send to bot admins?",
	"send_to.user":        "What do you want to send to",
	"send_to.from":        "From",
	"send_to.blocked":     "Error, the user blocked the bot.",
	"send_to.unsupported": "Error, the file type isn't supported",

	"set_name.prompt":        "Which name do you want to use?",
	"set_name.max_chars":     "Redo the command using less characters.",
	"set_name.name_banned":   "Redo the command using a not banned name.",
	"set_name.personal_name": "Your name is now",
	"set_name.name_of":       "The name of",
	"set_name.is_now":        "is now",
	"set_name.resetted":      "has been resetted!",

	"permission.permission_of": "Use of command by",
	"permission.locked":        "disabled!",
	"permission.unlocked":      "enabled!",
	"permission.list":          "Commands permission list for",

	"set_admin.add":    "is now admin!",
	"set_admin.remove": "is no longer an admin!",

	"set_sentence.sentence_banned":   "Redo the command and don't use banned words in the sentence.",
	"set_sentence.personal_sentence": "Your sentence is now",
	"set_sentence.sentence_of":       "The personal sentence of",

	"set_gender.m":  "will now be considered male.",
	"set_gender.f":  "will now be considered female.",
	"set_gender.nb": "will now be considered non-binary.",

	"info.name":         "First name:",
	"info.last_name":    "Last name:",
	"info.user_id":      "User ID:",
	"info.bot_name":     "Name in the bot:",
	"info.sentence":     "Personal sentence:",
	"info.language":     "Language:",
	"info.notification": "Notifications on:",
	"info.admin":        "Admin account:",
	"info.gender":       "Gender:",

	"custom_commands.add_command":         "What's the name of the command to create / update?",
	"custom_commands.add_command_content": "Send the message to save!",
	"custom_commands.added":               "added / updated!",
	"custom_commands.removed":             "deleted!",
	"custom_commands.remove_command":      "Which command do you want to delete?",
	"custom_commands.not_found":           "Command not found!",
	"custom_commands.list":                "List of custom commands:",
}
