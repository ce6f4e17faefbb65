// Package consts contains constants for the bot domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// User commands
var (
	CommandStart    = Command{Name: "start", Description: "Botni ishga tushirish"}
	CommandHelp     = Command{Name: "help", Description: "Yordam"}
	CommandBalance  = Command{Name: "balance", Description: "Referal balans"}
	CommandWithdraw = Command{Name: "withdraw", Description: "Pul yechish"}
	CommandPlans    = Command{Name: "plans", Description: "Premium tariflar"}
	CommandPremium  = Command{Name: "premium", Description: "Premium sotib olish"}
	CommandCancel   = Command{Name: "cancel", Description: "Bekor qilish"}
)

// Admin commands
var (
	CommandAddAdmin   = Command{Name: "addadmin", Description: "Admin qo'shish"}
	CommandDelAdmin   = Command{Name: "deladmin", Description: "Adminni o'chirish"}
	CommandToggle     = Command{Name: "toggle", Description: "Admin huquqini almashtirish"}
	CommandSetting    = Command{Name: "setting", Description: "Sozlamani o'zgartirish"}
	CommandAddChannel = Command{Name: "addchannel", Description: "Majburiy kanal qo'shish"}
	CommandDelChannel = Command{Name: "delchannel", Description: "Majburiy kanalni o'chirish"}
	CommandRefStats   = Command{Name: "refstats", Description: "Referal statistika"}
)

// AllCommands contains the commands shown in the bot menu
var AllCommands = []Command{
	CommandStart,
	CommandHelp,
	CommandBalance,
	CommandWithdraw,
	CommandPlans,
	CommandPremium,
	CommandCancel,
}

// Callback data prefixes. Resolution callbacks carry the request id after the colon.
const (
	CallbackCheckSubscription = "check_sub"
	CallbackWithdrawConfirm   = "wd_confirm"
	CallbackWithdrawCancel    = "wd_cancel"
	CallbackWithdrawApprove   = "wd_approve:"
	CallbackWithdrawReject    = "wd_reject:"
	CallbackPremiumApprove    = "pr_approve:"
	CallbackPremiumReject     = "pr_reject:"
)

// ReferralPrefix is the /start payload of a referral link
const ReferralPrefix = "ref_"

// HelpHint answers messages the bot does not understand
const HelpHint = "🤖 Buyruqlar ro'yxati uchun /help ni yuboring."
