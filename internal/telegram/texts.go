package telegram

// User-facing reply texts.
const (
	helpText = "<b>Welcome to the Medicine Reminder Bot!</b>\n\n" +
		"<b>You can use the following commands:</b>\n\n" +
		"/help - Show the list of available commands\n\n" +
		"/list - List all your medicine intervals\n" +
		"<i>Example:</i> /list\n" +
		"This command will display all your medicine intervals.\n\n" +
		"/new_medicine - Add a new medicine interval\n" +
		"<i>Example:</i> /new_medicine aspirin 2 09:00\n" +
		"This command adds a new medicine interval. Provide the medicine name, day interval (1-15), and day hour (HH:MM format).\n\n" +
		"/delete_medicine - Delete a medicine interval\n" +
		"<i>Example:</i> /delete_medicine aspirin 1 09:00\n" +
		"This command deletes a medicine interval. Provide the medicine name, day interval (1-15), and day hour (HH:MM format).\n\n" +
		"Please note that the time format for medicine intervals should be HH:MM (24-hour format).\n" +
		"For example, to set a medicine interval for 9:00 PM, use '21:00'."

	newMedicineUsage = "Invalid number of arguments. Please provide the medicine name, day interval, and day hour " +
		"in the format `/new_medicine <medicine_name> <day_interval> <day_hour>`."
	deleteMedicineUsage = "Invalid number of arguments. Please provide the medicine name, day interval, and day hour " +
		"in the format `/delete_medicine <medicine_name> <day_interval> <day_hour>`."

	invalidIntervalText = "Invalid day interval. Please provide a number between 1 and 15."
	invalidTimeText = "Invalid day hour format. Please provide the hour in the format 'HH:MM' " +
		"(e.g., '21:00', '06:00', '21:56', '11:59', '13:00')."

	notRegisteredText     = "Please call /start command first"
	duplicateMedicineText = "A medicine with the same combination of name, hour, and interval already exists."
	medicineNotFoundText  = "The specified medicine does not exist."
	noMedicinesText       = "You have no medicines added."
	internalErrorText     = "Something went wrong. Please try again later."
)
