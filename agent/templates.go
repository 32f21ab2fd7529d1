package agent

import "github.com/scamtrap/honeypot/domain"

// GoalEmotion maps each goal to the persona's emotional framing.
var GoalEmotion = map[domain.Goal]string{
	domain.GoalInitiateContact:   "Trusting",
	domain.GoalEngageAndStall:    "Trusting",
	domain.GoalAskPaymentContext: "Confused",
	domain.GoalAskUPIDetails:     "Anxious",
	domain.GoalAskBankDetails:    "Anxious",
	domain.GoalAskPhishingLink:   "Hesitant",
	domain.GoalExitSafely:        "Hesitant",
}

// GoalRisk maps each goal to the perceived-risk level reported alongside
// replies. Early goals read calm, late "ask" goals read anxious.
var GoalRisk = map[domain.Goal]float64{
	domain.GoalInitiateContact:   0.2,
	domain.GoalEngageAndStall:    0.3,
	domain.GoalAskPaymentContext: 0.4,
	domain.GoalAskUPIDetails:     0.6,
	domain.GoalAskBankDetails:    0.6,
	domain.GoalAskPhishingLink:   0.7,
	domain.GoalExitSafely:        0.8,
}

// responseTemplates holds the persona's candidate phrases per goal.
// Persona: Sarah, 68, retired teacher, nervous, not tech-savvy.
// Short sentences, broken English, light Hinglish, at most one emoji.
var responseTemplates = map[domain.Goal][]string{
	domain.GoalInitiateContact: {
		"Hello? Who is this?",
		"Ji... you called? What happened?",
		"Namaste beta. Is everything okay?",
		"Hello... I got missed call...",
		"Beta who is speaking? I am Sarah.",
	},
	domain.GoalEngageAndStall: {
		"Haan haan... I'm listening beta.",
		"Wait... my phone is slow. Say again?",
		"Arre... I didn't understand 😟",
		"Beta speak slowly please...",
		"Okay okay... but which button?",
		"My grandson usually helps me beta...",
		"I get confused easily... sorry beta.",
	},
	domain.GoalAskPaymentContext: {
		"Which app to use beta?",
		"Should I go to bank?",
		"PhonePe or Google Pay?",
		"I have Paytm also... which one?",
		"How to send beta?",
		"Cash or online?",
	},
	domain.GoalAskUPIDetails: {
		"UPI id kya hai beta?",
		"Where to send? Tell UPI.",
		"What is your UPI?",
		"Beta... which UPI id?",
		"Spell the UPI slowly...",
		"Phone number ka UPI?",
		"UPI id batao beta...",
	},
	domain.GoalAskBankDetails: {
		"UPI not working 😟\nAccount number?",
		"App crashed beta.\nBank details please?",
		"This is showing error...\nAccount number batao?",
		"I'll do bank transfer.\nAccount and IFSC?",
		"Which bank beta?",
		"Account number kya hai?",
		"IFSC code also?",
		"My phone is hanging...\nJust tell account number?",
		"App is stuck.\nI'll use net banking... details?",
		"This app... not working.\nBank account?",
	},
	domain.GoalAskPhishingLink: {
		"Any website beta?",
		"Link hai kya?",
		"My son said check website first 😟",
		"Can you send link?",
		"Whatsapp me link send karo?",
		"Any portal or app?",
		"Website link please beta...",
	},
	domain.GoalExitSafely: {
		"Okay beta... I will do tomorrow.",
		"Let me ask my son first...",
		"I'll go to bank branch beta.",
		"Thank you... I'll call you back.",
		"Noted beta. Will do from bank.",
		"My grandson will help me... bye beta.",
	},
}
