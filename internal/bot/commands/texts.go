package commands

import (
	"strconv"

	"PizzaBot/internal/core/ports"
)

// User-facing texts. HTML parse mode throughout.
const (
	textWelcome = "Вітаю у <b>ADP Pizza</b>! 🍕 Це ваш особистий помічник, завдяки якому ви зможете ознайомитися " +
		"з нашим меню, замовити піцу та отримати інформацію про акції.\n\n" +
		"Сподіваємось, ви знайдете улюблені смаки та насолоджуватиметесь кожним шматочком! Cмачного! 🍕"
	textMenuHeader      = "📋 Меню <b>ADP Pizza</b>"
	textItemNotFound    = "Товар не знайдено 😶‍🌫️"
	textItemAdded       = "Товар додано в кошик 🧺"
	textCartEmpty       = "Наразі кошик пустий 😔"
	textCartCleaned     = "Кошик очищено 😔"
	textOrderCancelled  = "Замовлення відхилено ❌"
	textPhoneRequest    = "Будь ласка, надайте номер телефону 📱"
	textPhoneSaved      = "✅ Номер збережено"
	textLocationRequest = "Будь ласка, вкажіть адресу доставки 🗺️\n\nTelegram -> Attach -> Location"
	textLocationSaved   = "✅ Адресу збережено"

	labelMenu          = "📋 Переглянути меню"
	labelCart          = "🧺 Перейти до кошику"
	labelAllDetails    = "Показати всі товари"
	labelAddToCart     = "➕ Додати до замовлення"
	labelStartOrder    = "📄 Перейти до замовлення"
	labelCleanCart     = "❌ Очистити кошик"
	labelConfirmOrder  = "✅ Підтвердити замовлення"
	labelCancelOrder   = "❌ Відхилити замовлення"
	labelChangeAddress = "🗺️ Змінити адресу"
	labelShareContact  = "📱 Поділитися номером телефону"
)

func menuButton() ports.Button {
	return ports.Button{Text: labelMenu, Data: CmdMenu}
}

func cartButton() ports.Button {
	return ports.Button{Text: labelCart, Data: CmdOpenCart}
}

// formatPrice renders prices the way the backend stores them: whole
// amounts without a decimal point, fractional ones as-is.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
