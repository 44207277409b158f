package i18n

// Message keys.
const (
	KeyInvalidRequest        = "invalid_request"
	KeyInternal              = "internal_error"
	KeyUnauthenticated       = "unauthenticated"
	KeyForbidden             = "forbidden"
	KeyNotFound              = "not_found"
	KeyInvalidCredentials    = "invalid_credentials"
	KeyInvalidEmail          = "invalid_email"
	KeyWeakPassword          = "weak_password"
	KeyInvalidUsername       = "invalid_username"
	KeyUsernameTaken         = "username_taken"
	KeyEmailTaken            = "email_taken"
	KeyInvalidResetCode      = "invalid_reset_code"
	KeyResetSent             = "reset_sent"
	KeyInvalidCode           = "invalid_code"
	KeyCodeUsed              = "code_used"
	KeyCodeRedeemed          = "code_redeemed"
	KeyRedeemFailed          = "redeem_failed"
	KeyInvalidTier           = "invalid_tier"
	KeySameTier              = "same_tier"
	KeyRequestPending        = "request_pending"
	KeyNoPendingRequest      = "no_pending_request"
	KeyAlreadyResolved       = "already_resolved"
	KeyInvalidDowngrade      = "invalid_downgrade"
	KeyUnknownSymbol         = "unknown_symbol"
	KeyUnknownCategory       = "unknown_category"
	KeyNoSymbols             = "no_symbols"
	KeyInvalidBudget         = "invalid_budget"
	KeyPromptSignIn          = "sign_in"
	KeyPromptUpgradePro      = "upgrade_pro"
	KeyPromptUpgradeUltimate = "upgrade_ultimate"
)

var messages = map[string]map[string]string{
	"en": {
		KeyInvalidRequest:        "The request is invalid.",
		KeyInternal:              "Something went wrong. Please try again.",
		KeyUnauthenticated:       "Please sign in to continue.",
		KeyForbidden:             "You are not allowed to do this.",
		KeyNotFound:              "Not found.",
		KeyInvalidCredentials:    "Invalid email or password.",
		KeyInvalidEmail:          "Please enter a valid email address.",
		KeyWeakPassword:          "Password must be at least 6 characters.",
		KeyInvalidUsername:       "Username must be 3-30 letters, digits, '_' or '.'.",
		KeyUsernameTaken:         "Username already exists. Please choose a different username.",
		KeyEmailTaken:            "This email is already registered.",
		KeyInvalidResetCode:      "The reset code is invalid or has expired.",
		KeyResetSent:             "Password reset instructions sent to your email.",
		KeyInvalidCode:           "Invalid access code.",
		KeyCodeUsed:              "This access code has already been used.",
		KeyCodeRedeemed:          "Access code redeemed successfully!",
		KeyRedeemFailed:          "Failed to redeem code. Support has been notified.",
		KeyInvalidTier:           "Unknown plan.",
		KeySameTier:              "You are already on this plan.",
		KeyRequestPending:        "You already have a pending payment request.",
		KeyNoPendingRequest:      "No such pending request.",
		KeyAlreadyResolved:       "This request has already been resolved.",
		KeyInvalidDowngrade:      "You can only downgrade to a lower plan.",
		KeyUnknownSymbol:         "Unknown symbol.",
		KeyUnknownCategory:       "Unknown market category.",
		KeyNoSymbols:             "At least one symbol is required.",
		KeyInvalidBudget:         "Budget must be between %s and %s.",
		KeyPromptSignIn:          "Sign in to unlock this feature.",
		KeyPromptUpgradePro:      "Upgrade to Pro to unlock this feature.",
		KeyPromptUpgradeUltimate: "Upgrade to Ultimate to unlock this feature.",
	},
	"tr": {
		KeyInvalidRequest:        "İstek geçersiz.",
		KeyInternal:              "Bir şeyler ters gitti. Lütfen tekrar deneyin.",
		KeyUnauthenticated:       "Devam etmek için lütfen giriş yapın.",
		KeyForbidden:             "Bu işlem için yetkiniz yok.",
		KeyNotFound:              "Bulunamadı.",
		KeyInvalidCredentials:    "E-posta veya şifre hatalı.",
		KeyInvalidEmail:          "Lütfen geçerli bir e-posta adresi girin.",
		KeyWeakPassword:          "Şifre en az 6 karakter olmalıdır.",
		KeyInvalidUsername:       "Kullanıcı adı 3-30 harf, rakam, '_' veya '.' içermelidir.",
		KeyUsernameTaken:         "Bu kullanıcı adı zaten alınmış. Lütfen başka bir kullanıcı adı seçin.",
		KeyEmailTaken:            "Bu e-posta zaten kayıtlı.",
		KeyInvalidResetCode:      "Sıfırlama kodu geçersiz veya süresi dolmuş.",
		KeyResetSent:             "Şifre sıfırlama talimatları e-postanıza gönderildi.",
		KeyInvalidCode:           "Geçersiz erişim kodu.",
		KeyCodeUsed:              "Bu erişim kodu zaten kullanılmış.",
		KeyCodeRedeemed:          "Erişim kodu başarıyla kullanıldı!",
		KeyRedeemFailed:          "Kod kullanılamadı. Destek ekibi bilgilendirildi.",
		KeyInvalidTier:           "Bilinmeyen plan.",
		KeySameTier:              "Zaten bu plandasınız.",
		KeyRequestPending:        "Bekleyen bir ödeme talebiniz zaten var.",
		KeyNoPendingRequest:      "Böyle bekleyen bir talep yok.",
		KeyAlreadyResolved:       "Bu talep zaten sonuçlandırılmış.",
		KeyInvalidDowngrade:      "Yalnızca daha düşük bir plana geçebilirsiniz.",
		KeyUnknownSymbol:         "Bilinmeyen sembol.",
		KeyUnknownCategory:       "Bilinmeyen piyasa kategorisi.",
		KeyNoSymbols:             "En az bir sembol gereklidir.",
		KeyInvalidBudget:         "Bütçe %s ile %s arasında olmalıdır.",
		KeyPromptSignIn:          "Bu özelliği açmak için giriş yapın.",
		KeyPromptUpgradePro:      "Bu özelliği açmak için Pro'ya yükseltin.",
		KeyPromptUpgradeUltimate: "Bu özelliği açmak için Ultimate'a yükseltin.",
	},
	"ru": {
		KeyInvalidRequest:        "Неверный запрос.",
		KeyInternal:              "Что-то пошло не так. Попробуйте ещё раз.",
		KeyUnauthenticated:       "Пожалуйста, войдите, чтобы продолжить.",
		KeyForbidden:             "У вас нет прав на это действие.",
		KeyNotFound:              "Не найдено.",
		KeyInvalidCredentials:    "Неверный email или пароль.",
		KeyInvalidEmail:          "Введите корректный адрес email.",
		KeyWeakPassword:          "Пароль должен содержать не менее 6 символов.",
		KeyUsernameTaken:         "Имя пользователя уже занято. Выберите другое.",
		KeyEmailTaken:            "Этот email уже зарегистрирован.",
		KeyInvalidResetCode:      "Код сброса недействителен или истёк.",
		KeyResetSent:             "Инструкции по сбросу пароля отправлены на вашу почту.",
		KeyInvalidCode:           "Неверный код доступа.",
		KeyCodeUsed:              "Этот код доступа уже использован.",
		KeyCodeRedeemed:          "Код доступа успешно активирован!",
		KeyInvalidTier:           "Неизвестный тариф.",
		KeySameTier:              "У вас уже этот тариф.",
		KeyRequestPending:        "У вас уже есть ожидающий запрос на оплату.",
		KeyNoPendingRequest:      "Такого ожидающего запроса нет.",
		KeyAlreadyResolved:       "Этот запрос уже обработан.",
		KeyInvalidDowngrade:      "Можно перейти только на более низкий тариф.",
		KeyUnknownSymbol:         "Неизвестный тикер.",
		KeyNoSymbols:             "Нужен хотя бы один тикер.",
		KeyPromptSignIn:          "Войдите, чтобы открыть эту функцию.",
		KeyPromptUpgradePro:      "Перейдите на Pro, чтобы открыть эту функцию.",
		KeyPromptUpgradeUltimate: "Перейдите на Ultimate, чтобы открыть эту функцию.",
	},
	"de": {
		KeyInvalidRequest:        "Die Anfrage ist ungültig.",
		KeyInternal:              "Etwas ist schiefgelaufen. Bitte versuche es erneut.",
		KeyUnauthenticated:       "Bitte melde dich an, um fortzufahren.",
		KeyForbidden:             "Dazu bist du nicht berechtigt.",
		KeyNotFound:              "Nicht gefunden.",
		KeyInvalidCredentials:    "Ungültige E-Mail oder ungültiges Passwort.",
		KeyInvalidEmail:          "Bitte gib eine gültige E-Mail-Adresse ein.",
		KeyWeakPassword:          "Das Passwort muss mindestens 6 Zeichen lang sein.",
		KeyUsernameTaken:         "Der Benutzername existiert bereits. Bitte wähle einen anderen.",
		KeyEmailTaken:            "Diese E-Mail ist bereits registriert.",
		KeyInvalidResetCode:      "Der Code ist ungültig oder abgelaufen.",
		KeyResetSent:             "Anweisungen zum Zurücksetzen wurden an deine E-Mail gesendet.",
		KeyInvalidCode:           "Ungültiger Zugangscode.",
		KeyCodeUsed:              "Dieser Zugangscode wurde bereits verwendet.",
		KeyCodeRedeemed:          "Zugangscode erfolgreich eingelöst!",
		KeyInvalidTier:           "Unbekannter Tarif.",
		KeySameTier:              "Du hast diesen Tarif bereits.",
		KeyRequestPending:        "Du hast bereits eine offene Zahlungsanfrage.",
		KeyNoPendingRequest:      "Keine solche offene Anfrage.",
		KeyAlreadyResolved:       "Diese Anfrage wurde bereits bearbeitet.",
		KeyInvalidDowngrade:      "Du kannst nur auf einen niedrigeren Tarif wechseln.",
		KeyUnknownSymbol:         "Unbekanntes Symbol.",
		KeyNoSymbols:             "Mindestens ein Symbol ist erforderlich.",
		KeyPromptSignIn:          "Melde dich an, um diese Funktion freizuschalten.",
		KeyPromptUpgradePro:      "Wechsle zu Pro, um diese Funktion freizuschalten.",
		KeyPromptUpgradeUltimate: "Wechsle zu Ultimate, um diese Funktion freizuschalten.",
	},
}
