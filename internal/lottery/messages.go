package lottery

import "github.com/argab/lottery/internal/models"

// SMS texts sent to applicants.
const (
	smsApplied   = "የዕጣ ትኬት ጥያቄዎ ተቀብለናል። የማረጋገጫ ኮድዎ: %s። ዕጣ: %d። ዋጋ: %d ብር።"
	smsVerified  = "ክፍያዎ ተረጋግጧል! ዕጣ ቁጥር: %d። የዕጣ ውጤት በሚገኝ ጊዜ ይጠበቃል።"
	smsPaid      = "ትኬትዎ ተሞልቷል! ዕጣ ቁጥር: %d። የዕጣ ውጤት በሚገኝ ጊዜ ይጠበቃል።"
	smsCancelled = "የዕጣ ትኬት ጥያቄዎ ተሰርዟል። ዕጣ ቁጥር: %d።"
)

// Transaction validation texts returned to the admin panel.
const (
	msgTransactionInvalid      = "ትራንዛክሽን ቁጥር አልተገኘም ወይም ትክክል አይደለም።"
	msgTransactionAlreadyUsed  = "ይህ ትራንዛክሽን ቁጥር አስቀድሞ ተረጋግጦ ጥቅም ላይ ውሏል።"
	msgTransactionUnassociated = "ትራንዛክሽን ቁጥሩ ትክክል ቢሆንም በምንም ጥያቄ ላይ አልተገኘም።"
	msgTransactionInternal     = "ትራንዛክሽኑን ማረጋገጥ አልተቻለም። እባክዎ እንደገና ይሞክሩ።"

	suggestNewTransaction = "አዲስ ትራንዛክሽን ቁጥር ያስገቡ።"
	suggestCheckForm      = "ትራንዛክሽን ቁጥሩን በትኬት ጥያቄ ቅጽ ላይ መሙላትዎን ያረጋግጡ።"
)

var msgTransactionValid = map[models.PaymentMethod]string{
	models.PaymentTelebirr:  "የTeleBirr ትራንዛክሽን ቁጥር ትክክል ነው!",
	models.PaymentCBEMobile: "የCBE Mobile ትራንዛክሽን ቁጥር ትክክል ነው!",
}
