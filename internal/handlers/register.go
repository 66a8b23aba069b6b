package handlers

import (
	tele "gopkg.in/telebot.v4"

	tg "toolsbot/core/telegram"
	"toolsbot/core/telegram/commands"
	"toolsbot/internal/domain"
	"toolsbot/internal/flow"
)

// Register wires every command, callback and flow continuation.
func (h *Handlers) Register(reg *tg.Registry, flows *flow.Registry) {
	h.flows = flows

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Greet,
		Description: "Greet the bot",
		Aliases:     []string{"/hello"},
	})
	reg.RegisterCommand("/lang", commands.Command{
		Handler:     h.Lang,
		Description: "Choose the bot language",
	})
	reg.RegisterCommand("/setname", commands.Command{
		Handler:     h.SetName,
		Description: "Choose the name the bot calls you",
	})
	reg.RegisterCommand("/resetname", commands.Command{
		Handler:     h.ResetName,
		Description: "Go back to your real first name",
	})
	reg.RegisterCommand("/randomname", commands.Command{
		Handler:     h.RandomName,
		Description: "Get a random name",
	})
	reg.RegisterCommand("/gender", commands.Command{
		Handler:     h.Gender,
		Description: "Cycle the gender used for random names",
	})
	reg.RegisterCommand("/randomnumber", commands.Command{
		Handler:     h.RandomNumber,
		Description: "Get a random number",
	})
	reg.RegisterCommand("/qrcode", commands.Command{
		Handler:     h.Qrcode,
		Description: "Turn text into a QR code",
	})
	reg.RegisterCommand("/eventstoday", commands.Command{
		Handler:     h.EventsToday,
		Description: "A historical event that happened today",
	})
	reg.RegisterCommand("/notifications", commands.Command{
		Handler:     h.Notifications,
		Description: "Toggle online/offline notifications",
	})
	reg.RegisterCommand("/info", commands.Command{
		Handler:     h.Info,
		Description: "Show your stored profile",
	})
	reg.RegisterCommand("/permissionlist", commands.Command{
		Handler:     h.PermissionList,
		Description: "Show which commands you may use",
	})
	reg.RegisterCommand("/sendtoowner", commands.Command{
		Handler:     h.SendToOwner,
		Description: "Send a message to the bot owner",
	})
	reg.RegisterCommand("/sendtoadmin", commands.Command{
		Handler:     h.SendToAdmin,
		Description: "Send a message to the bot admins",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     h.Cancel,
		Description: "Abort the current operation",
	})
	reg.RegisterCommand("/about", commands.Command{
		Handler:     h.About,
		Description: "About this bot",
	})

	// Admin commands, hidden from the default menu.
	admin := func(handler tele.HandlerFunc, desc string) commands.Command {
		return commands.Command{Handler: handler, Description: desc, AdminOnly: true, Hidden: true}
	}
	reg.RegisterCommand("/getids", admin(h.GetIds, "List every user"))
	reg.RegisterCommand("/sendto", admin(h.SendTo, "Send a message to a chosen user"))
	reg.RegisterCommand("/broadcast", admin(h.Broadcast, "Send a message to everyone"))
	reg.RegisterCommand("/getpersoninfo", admin(h.GetPersonInfo, "Show a user's profile"))
	reg.RegisterCommand("/setpersonname", admin(h.SetPersonName, "Rename a user"))
	reg.RegisterCommand("/resetpersonname", admin(h.ResetPersonName, "Reset a user's name"))
	reg.RegisterCommand("/setpersonpermission", admin(h.SetPersonPermission, "Toggle a user's command permission"))
	reg.RegisterCommand("/getpersonpermission", admin(h.GetPersonPermission, "Show a user's permissions"))
	reg.RegisterCommand("/setpersonadmin", admin(h.SetPersonAdmin, "Promote or demote a user"))
	reg.RegisterCommand("/setpersonsentence", admin(h.SetPersonSentence, "Set a user's personal sentence"))
	reg.RegisterCommand("/setpersonlang", admin(h.SetPersonLang, "Change a user's language"))
	reg.RegisterCommand("/setpersongender", admin(h.SetPersonGender, "Cycle a user's gender"))
	reg.RegisterCommand("/addbanned", admin(h.AddBanned, "Ban a word"))
	reg.RegisterCommand("/removebanned", admin(h.RemoveBanned, "Unban a word"))
	reg.RegisterCommand("/addultrabanned", admin(h.AddUltraBanned, "Hyperban a word"))
	reg.RegisterCommand("/removeultrabanned", admin(h.RemoveUltraBanned, "Remove a hyperbanned word"))
	reg.RegisterCommand("/getcommandslist", admin(h.GetCommandsList, "List custom commands"))
	reg.RegisterCommand("/addcommand", admin(h.AddCommand, "Create or update a custom command"))
	reg.RegisterCommand("/removecommand", admin(h.RemoveCommand, "Delete a custom command"))

	_ = reg.RegisterCallback("lang", h.LangCallback)

	flows.MustRegister(domain.HandlerResolveTarget, h.flowResolveTarget)
	flows.MustRegister(domain.HandlerResolveAmbiguousTarget, h.flowResolveAmbiguousTarget)
	flows.MustRegister(domain.HandlerSetName, h.flowSetName)
	flows.MustRegister(domain.HandlerResetName, h.flowResetName)
	flows.MustRegister(domain.HandlerSetSentence, h.flowSetSentence)
	flows.MustRegister(domain.HandlerSetPermission, h.flowSetPermission)
	flows.MustRegister(domain.HandlerListPermission, h.flowListPermissions)
	flows.MustRegister(domain.HandlerSetLanguage, h.flowSetLanguage)
	flows.MustRegister(domain.HandlerSetGender, h.flowSetGender)
	flows.MustRegister(domain.HandlerSetAdmin, h.flowSetAdmin)
	flows.MustRegister(domain.HandlerGetInfo, h.flowGetInfo)
	flows.MustRegister(domain.HandlerRelayMessage, h.flowRelayMessage)
	flows.MustRegister(domain.HandlerBroadcast, h.flowBroadcast)
	flows.MustRegister(domain.HandlerGenerateQR, h.flowGenerateQR)
	flows.MustRegister(domain.HandlerAddBannedWord, h.flowAddBannedWord)
	flows.MustRegister(domain.HandlerRemoveBannedWord, h.flowRemoveBannedWord)
	flows.MustRegister(domain.HandlerAskCommandContent, h.flowAskCommandContent)
	flows.MustRegister(domain.HandlerSaveCustomCommand, h.flowSaveCustomCommand)
	flows.MustRegister(domain.HandlerRemoveCustomCommand, h.flowRemoveCustomCommand)
}
