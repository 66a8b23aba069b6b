package locale

var it = map[string]string{
	"not_found": "Risposta non trovata per la lingua selezionata.",

	"permission_denied.default":      "Non hai il permesso di usare questo comando!",
	"permission_denied.target_admin": "Non puoi bloccare un admin.",
	"permission_denied.owner_only":   "Devi essere owner.",
	"permission_denied.admin_only":   "Devi essere admin con i giusti permessi.",
	"permission_denied.restricted":   "Il tuo uso del comando è soggetto a restrizioni.",
	"permission_denied.not_found":    "Non eri nel database, prova di nuovo.",

	"notifications.bot":     "Il bot è",
	"notifications.on":      "Notifiche attivate.",
	"notifications.off":     "Notifiche disattivate.",
	"notifications.online":  "operativo",
	"notifications.offline": "spento",

	"greet": "Ciao",

	"history.page404": "Pagina non trovata!",

	"about": "Bot sviluppato da @Supergiuchannel, il codice è disponibile su Github.",

	"choose_target": "Inserisci il nome dell'utente:",

	"choose_argument.not_found":      "Utente non trovato.",
	"choose_argument.selected":       "Utente selezionato:",
	"choose_argument.argument":       "Inserisci l'argomento:",
	"choose_argument.multiple_found": "Sono stati trovati più utenti! Seleziona l'id dell'utente.",

	"set_lang.choice":       "Che lingua vuoi usare?",
	"set_lang.confirmation": "riceverà i messaggi in",

	"handle_media.audio": "ho perso le cuffie e non posso ascoltare ciò che hai inviato.",
	"handle_media.image": "ho perso gli occhiali e non posso visualizzare ciò che hai inviato",

	"banned_words.banned":           "bannata.",
	"banned_words.already_banned":   "Parola già bannata.",
	"banned_words.already_unbanned": "la parola non era bannata.",
	"banned_words.add_banned":       "Che parola vuoi vietare?",
	"banned_words.remove_banned":    "Che parola vuoi sbannare da questa categoria?",
	"banned_words.add_ultrabanned":  "Che parola vuoi iper vietare?",
	"banned_words.unbanned":         "sbannata",

	"sent": "inviato!",

	"cancel": "Operazione annullata.",
	"expired": "L'operazione in sospeso è scaduta, ricomincia.",

	"qrcode.error":       "errore, per favore invia questo messaggio a",
	"qrcode.msg_to_send": "Inviami del testo e genererò un QR code",

	"broadcast.msg_to_send": "Che messaggio vuoi inviare in broadcast?",
	"broadcast.from":        "Annuncio di",
	"broadcast.admin_from":  "Messaggio per gli admin di",

	"send_to.admins":      "Che messaggio vuoi inviare agli admin?",
	"send_to.user":        "Che messaggio vuoi inviare a",
	"send_to.from":        "Da",
	"send_to.blocked":     "Errore, l'utente ha bloccato il bot",
	"send_to.unsupported": "Errore, il tipo di file non è supportato.",

	"set_name.prompt":        "Che nome vuoi usare?",
	"set_name.max_chars":     "Riesegui il comando usando meno caratteri.",
	"set_name.name_banned":   "Riesegui il comando usando un nome consentito.",
	"set_name.personal_name": "Il tuo nome è ora",
	"set_name.name_of":       "Il nome di",
	"set_name.is_now":        "è ora",
	"set_name.resetted":      "è stato resettato!",

	"permission.permission_of": "Uso del comando di",
	"permission.locked":        "bloccato!",
	"permission.unlocked":      "sbloccato!",
	"permission.list":          "Lista dei permessi per i comandi di",

	"set_admin.add":    "è ora admin!",
	"set_admin.remove": "non è più admin!",

	"set_sentence.sentence_banned":   "Riesegui il comando usando solo termini consentiti.",
	"set_sentence.personal_sentence": "La tua frase è ora",
	"set_sentence.sentence_of":       "La frase di",

	"set_gender.m":  "sarà ora considerato maschio.",
	"set_gender.f":  "sarà ora considerata femmina.",
	"set_gender.nb": "sarà ora considerato non binario.",

	"info.name":         "Nome:",
	"info.last_name":    "Cognome:",
	"info.user_id":      "ID Utente:",
	"info.bot_name":     "Nome nel bot:",
	"info.sentence":     "Frase personale:",
	"info.language":     "Lingua:",
	"info.notification": "Notifiche attive:",
	"info.admin":        "Account admin:",
	"info.gender":       "Genere:",

	"custom_commands.add_command":         "Qual è il nome del comando da creare / aggiornare?",
	"custom_commands.add_command_content": "Invia il messaggio da salvare!",
	"custom_commands.added":               "aggiunto / aggiornato!",
	"custom_commands.removed":             "rimosso!",
	"custom_commands.remove_command":      "Quale comando vuoi rimuovere?",
	"custom_commands.not_found":           "Comando non trovato!",
	"custom_commands.list":                "Lista dei comandi personalizzati:",
}
