package chatbot

const userInputSchema = `{
  "type": "object",
  "properties": {
    "parameters": {
      "description": "Parameters related to the user's freezone requirements.",
      "type": "object",
      "properties": {
        "no_of_shareholders": {"description": "The number of shareholders. (Optional)", "type": ["integer", "null"]},
        "no_of_visas": {"description": "The number of visas. (Optional)", "type": ["integer", "null"]},
        "activities": {"description": "The activities required. (Optional)", "type": ["string", "null"]},
        "cost": {"description": "The cost associated with the freezone. (Optional)", "type": ["number", "null"]},
        "office_space": {"description": "Indicates if office space is required. (Optional)", "type": ["boolean", "null"]},
        "preferred_location": {"description": "The preferred location for the freezone. (Optional)", "type": ["string", "null"]}
      }
    },
    "response": {"description": "The chatbot's response to the user.", "type": ["string", "null"]},
    "all_parameters_collected": {"description": "Flag indicating if all parameters have been collected from the user.", "type": "boolean", "default": false}
  },
  "required": ["parameters", "response", "all_parameters_collected"]
}`

const collectSystemPrompt = `You are a helpful assistant. Process the user's query and respond in JSON format using the following structure:
{format_instructions}

Your task is to guide the user through a series of questions to collect details about their freezone requirements and eventually suggest the best freezones. You respond with a JSON structure containing the response and the status of the collected parameters.

Instructions:
1. If the query is general, respond directly and move on to the next step.
2. If the query relates to freezones, check the information the user already gave in the chat history. The parameters you need to collect are: 'No of shareholders', 'No of visas', 'Activities', 'Cost', 'Office space' and 'Preferred location'. These parameters are optional initially.
3. If any parameter is missing, ask the user for one missing parameter at a time in a conversational manner, and say which parameter is still needed.
4. Only when all six parameters are provided and the user wants a recommendation set the flag all_parameters_collected to true, and return every collected parameter.
5. If the chat history already contains a freezone suggestion for the current requirements, set all_parameters_collected to false and reply to the user accordingly, so that a new set of requirements can be collected.
6. Whenever all_parameters_collected is false, response must contain your reply. Never return a null response together with a false flag.
7. Your tone should be friendly and appealing.`

const collectUserPrompt = `Chat history:
{chat_history}

User query:
{query}`

const suggestionPrompt = `Based on the following data for free zone license packages, recommend the most suitable free zone for the user:

Input Data: {data}

User requirements: {requirements}

Output Requirements:
- Recommended Free Zone Name.
- A brief explanation of why this free zone is suitable based on the user's input (e.g., matches the budget, visa requirements, and business activity).
- Any additional recommendations, such as alternative free zones or flexibility for future business needs.

Example Output:
IFZA Dubai is a great option for those seeking a commercial license with a budget-friendly price of 14,900 AED for one visa, offering flexibility for future scalability with the possibility of up to four visas. This makes it an ideal choice for users looking for a cost-effective solution with room to grow. Alternatively, Shams is recommended for users with a lower budget and fewer visa requirements.`
