package services

import (
	"strings"

	"garagepro-backend/models"
)

// defaultLine is one line of a built-in message. Lines whose required token
// is empty are dropped, and lines with an unless token are dropped when that
// token is set.
type defaultLine struct {
	text     string
	requires string
	unless   string
}

var defaultGreeting = []defaultLine{
	{text: "{customerName} 様"},
	{text: "いつも{shopName}をご利用いただき、誠にありがとうございます。", requires: TokenShopName},
	{text: "いつもご利用いただき、誠にありがとうございます。", unless: TokenShopName},
}

var defaultBookingLines = []defaultLine{
	{text: "ご予約・お問い合わせはこちらから承ります。"},
	{text: "{bookingUrl}", requires: TokenBookingURL},
}

func vehicleSubject(text string) []defaultLine {
	return []defaultLine{
		{text: "【{carName}（{registrationNumber}）】", requires: TokenRegistrationNumber},
		{text: "【{carName}】", unless: TokenRegistrationNumber},
		{text: text},
	}
}

func concatLines(parts ...[]defaultLine) []defaultLine {
	var out []defaultLine
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var defaultTemplates = map[models.Category][]defaultLine{
	models.CategoryBirthday: {
		{text: "{customerName} 様"},
		{text: "お誕生日おめでとうございます！"},
		{text: "{shopName}スタッフ一同、心よりお祝い申し上げます。", requires: TokenShopName},
		{text: "素敵な一年になりますように。"},
		{text: "これからもカーライフのサポートをさせていただければ幸いです。"},
	},
	models.CategoryShakenTwoMonth: concatLines(
		defaultGreeting,
		vehicleSubject("車検満了日（{mainDate}）まで残り2か月となりました。"),
		[]defaultLine{{text: "混み合う前に、お早めのご予約をおすすめいたします。"}},
		defaultBookingLines,
	),
	models.CategoryShakenOneWeek: concatLines(
		defaultGreeting,
		vehicleSubject("車検満了日（{mainDate}）まで残り1週間となりました。"),
		[]defaultLine{{text: "まだご予約がお済みでない場合は、至急ご連絡ください。"}},
		defaultBookingLines,
	),
	models.CategoryInspection: concatLines(
		defaultGreeting,
		vehicleSubject("法定点検の時期（{mainDate}）まで残り1か月となりました。"),
		[]defaultLine{{text: "安心・安全なカーライフのため、点検のご予約をお願いいたします。"}},
		defaultBookingLines,
	),
	models.CategoryCustom: concatLines(
		defaultGreeting,
		vehicleSubject("{mainDate}の{daysBefore}日前となりましたのでお知らせいたします。"),
		[]defaultLine{{text: "ご都合のよろしい日時をお知らせください。"}},
		defaultBookingLines,
	),
}

func renderDefault(category models.Category, rc RenderContext) string {
	var lines []string
	for _, line := range defaultTemplates[category] {
		if line.requires != "" {
			if v, _ := rc.lookup(line.requires); v == "" {
				continue
			}
		}
		if line.unless != "" {
			if v, _ := rc.lookup(line.unless); v != "" {
				continue
			}
		}
		lines = append(lines, RenderBody(line.text, rc))
	}
	return strings.Join(lines, "\n")
}

// DefaultBody is the built-in message for category written in the
// placeholder grammar, with every optional line included.
func DefaultBody(category models.Category) string {
	var lines []string
	for _, line := range defaultTemplates[category] {
		if line.unless != "" {
			continue
		}
		lines = append(lines, line.text)
	}
	return strings.Join(lines, "\n")
}
